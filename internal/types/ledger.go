// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountChecking   AccountType = "CHECKING"
	AccountSavings    AccountType = "SAVINGS"
	AccountCreditCard AccountType = "CREDIT_CARD"
	AccountInvestment AccountType = "INVESTMENT"
	AccountRetirement AccountType = "RETIREMENT"
	AccountCash       AccountType = "CASH"
	AccountProperty   AccountType = "PROPERTY"
	AccountOther      AccountType = "OTHER"
)

var accountTypes = []AccountType{
	AccountChecking, AccountSavings, AccountCreditCard, AccountInvestment,
	AccountRetirement, AccountCash, AccountProperty, AccountOther,
}

func (t AccountType) Valid() bool {
	return slices.Contains(accountTypes, t)
}

type LiabilityType string

const (
	LiabilityMortgage     LiabilityType = "MORTGAGE"
	LiabilityAutoLoan     LiabilityType = "AUTO_LOAN"
	LiabilityStudentLoan  LiabilityType = "STUDENT_LOAN"
	LiabilityPersonalLoan LiabilityType = "PERSONAL_LOAN"
	LiabilityCreditCard   LiabilityType = "CREDIT_CARD"
	LiabilityMedical      LiabilityType = "MEDICAL"
	LiabilityTax          LiabilityType = "TAX"
	LiabilityOther        LiabilityType = "OTHER"
)

var liabilityTypes = []LiabilityType{
	LiabilityMortgage, LiabilityAutoLoan, LiabilityStudentLoan, LiabilityPersonalLoan,
	LiabilityCreditCard, LiabilityMedical, LiabilityTax, LiabilityOther,
}

func (t LiabilityType) Valid() bool {
	return slices.Contains(liabilityTypes, t)
}

// Instrument holds the columns shared by accounts and liabilities.
type Instrument struct {
	ID             string     `db:"id" json:"id"`
	OrganizationID string     `db:"organization_id" json:"organization_id"`
	CreatedBy      string     `db:"created_by" json:"created_by"`
	Name           string     `db:"name" json:"name"`
	Type           string     `db:"type" json:"type"`
	Currency       string     `db:"currency" json:"currency"`
	Institution    *string    `db:"institution" json:"institution,omitempty"`
	AccountNumber  *string    `db:"account_number" json:"account_number,omitempty"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	DeletedBy      *string    `db:"deleted_by" json:"deleted_by,omitempty"`
}

type Account struct {
	Instrument
}

type Liability struct {
	Instrument

	InterestRate   *decimal.Decimal `db:"interest_rate" json:"interest_rate,omitempty"`
	MinimumPayment *decimal.Decimal `db:"minimum_payment" json:"minimum_payment,omitempty"`
	DueDate        *int16           `db:"due_date" json:"due_date,omitempty"`
}

// Balance is a dated snapshot of exactly one account or one liability.
type Balance struct {
	ID             string          `db:"id" json:"id"`
	OrganizationID string          `db:"organization_id" json:"organization_id"`
	AccountID      *string         `db:"account_id" json:"account_id,omitempty"`
	LiabilityID    *string         `db:"liability_id" json:"liability_id,omitempty"`
	Date           Date            `db:"date" json:"date"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	CreatedBy      string          `db:"created_by" json:"created_by"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// InstrumentID returns whichever of the two references is set.
func (b *Balance) InstrumentID() string {
	if b.AccountID != nil {
		return *b.AccountID
	}
	if b.LiabilityID != nil {
		return *b.LiabilityID
	}
	return ""
}

type InstrumentFilter struct {
	Type     string
	Currency string

	Pagination
}

type BalanceFilter struct {
	AccountID   string
	LiabilityID string
	From        *Date
	To          *Date

	Pagination
}

// BalanceEntry is one line of a bulk upsert, all lines sharing the same date.
type BalanceEntry struct {
	AccountID   *string         `json:"account_id,omitempty"`
	LiabilityID *string         `json:"liability_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

const DateLayout = "2006-01-02"

// Date is a calendar day without time of day, serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected %s", s, DateLayout)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}
