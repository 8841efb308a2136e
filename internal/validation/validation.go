// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package validation checks request payloads and reports failures per JSON field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/canonical/finance-tracker/internal/apperrors"
	"github.com/canonical/finance-tracker/internal/types"
)

type Validator struct {
	validate *validator.Validate
}

// Struct validates s and returns a ValidationFailed error keyed by JSON field path.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return apperrors.Internal(err)
	}

	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fieldPath(fe)] = message(fe)
	}

	return apperrors.Validation(fields)
}

// fieldPath drops the struct name from the namespace: "Request.entries[0].amount" -> "entries[0].amount".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must contain at least %s items", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must contain at most %s items", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "iso4217":
		return "must be an ISO 4217 currency code"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a UUID"
	case "account_type":
		return "must be a known account type"
	case "liability_type":
		return "must be a known liability type"
	case "role":
		return "must be one of OWNER, ADMIN, MEMBER, VIEWER"
	default:
		return fmt.Sprintf("failed the %s check", fe.Tag())
	}
}

func NewValidator() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	// Amounts and rates are checked as numbers with gte/lte.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	// The zero date is "missing" for required.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(types.Date); ok && !d.IsZero() {
			return d.String()
		}
		return ""
	}, types.Date{})

	_ = validate.RegisterValidation("account_type", func(fl validator.FieldLevel) bool {
		return types.AccountType(fl.Field().String()).Valid()
	})

	_ = validate.RegisterValidation("liability_type", func(fl validator.FieldLevel) bool {
		return types.LiabilityType(fl.Field().String()).Valid()
	})

	_ = validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return types.Role(fl.Field().String()).Valid()
	})

	return &Validator{validate: validate}
}
