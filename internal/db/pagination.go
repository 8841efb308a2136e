// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

const (
	defaultPageSize uint64 = 100
	maxPageSize     uint64 = 500
)

// Page is a normalized page request: pages start at 1 and sizes are capped at maxPageSize.
type Page struct {
	Number uint64
	Size   uint64
}

// NewPage normalizes raw query parameters, zero or negative values pick the defaults.
func NewPage(number, size int64) Page {
	p := Page{Number: 1, Size: defaultPageSize}

	if number > 0 {
		p.Number = uint64(number)
	}

	if size > 0 {
		p.Size = min(uint64(size), maxPageSize)
	}

	return p
}

// Offset is the number of rows to skip before this page.
func (p Page) Offset() uint64 {
	return (p.Number - 1) * p.Size
}
