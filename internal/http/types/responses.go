// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/canonical/finance-tracker/internal/apperrors"
)

const maxBodyBytes = 1 << 20

// Response is the envelope of every successful API response.
type Response struct {
	Data    any    `json:"data"`
	Meta    *Meta  `json:"_meta,omitempty"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Meta carries list metadata.
type Meta struct {
	Page   int64          `json:"page,omitempty"`
	Size   int64          `json:"size,omitempty"`
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts,omitempty"`
}

// ErrorResponse is the body of every failed API response.
type ErrorResponse struct {
	Status       int               `json:"status"`
	Message      string            `json:"message"`
	Kind         string            `json:"kind"`
	Fields       map[string]string `json:"fields,omitempty"`
	RequiredRole string            `json:"required_role,omitempty"`
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)

	return json.NewEncoder(w).Encode(v)
}

// WriteData wraps data in a Response envelope.
func WriteData(w http.ResponseWriter, code int, message string, data any, meta *Meta) error {
	return WriteJSON(w, code, Response{Data: data, Meta: meta, Status: code, Message: message})
}

// NewErrorResponse maps err onto its status code and public body.
// Internal errors never leak their message.
func NewErrorResponse(err error) ErrorResponse {
	e := apperrors.As(err)
	status := e.Kind.HTTPStatus()

	message := e.Message
	if e.Kind == apperrors.KindInternal {
		message = http.StatusText(status)
	}

	return ErrorResponse{
		Status:       status,
		Message:      message,
		Kind:         e.Kind.String(),
		Fields:       e.Fields,
		RequiredRole: e.RequiredRole,
	}
}

// WriteError writes err as an ErrorResponse and returns the status code used.
func WriteError(w http.ResponseWriter, err error) int {
	body := NewErrorResponse(err)
	_ = WriteJSON(w, body.Status, body)

	return body.Status
}

// DecodeJSON reads a single JSON object into v, rejecting unknown fields and trailing data.
func DecodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError

		switch {
		case errors.Is(err, io.EOF):
			return apperrors.ValidationField("body", "request body is empty")
		case errors.As(err, &syntaxErr):
			return apperrors.ValidationField("body", fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset))
		case errors.As(err, &typeErr):
			return apperrors.ValidationField(typeErr.Field, fmt.Sprintf("expected %s", typeErr.Type))
		default:
			return apperrors.ValidationField("body", err.Error())
		}
	}

	if decoder.More() {
		return apperrors.ValidationField("body", "request body must contain a single JSON object")
	}

	return nil
}
