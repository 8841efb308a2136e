// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/finance-tracker/internal/apperrors"
	httptypes "github.com/canonical/finance-tracker/internal/http/types"
	"github.com/canonical/finance-tracker/internal/logging"
)

// bufferedResponse holds the handler's answer until the transaction outcome is known.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header)}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}

	return b.body.Write(p)
}

func (b *bufferedResponse) flush(w http.ResponseWriter) {
	for k, v := range b.header {
		w.Header()[k] = v
	}

	status := b.status
	if status == 0 {
		status = http.StatusOK
	}

	w.WriteHeader(status)
	_, _ = w.Write(b.body.Bytes())
}

// TransactionMiddleware runs every mutating request inside a single database transaction.
// The transaction commits when the handler answers with a status below 400 and rolls back otherwise.
// The response is held back until the outcome is known: a failed commit answers 500 instead.
func TransactionMiddleware(db DBClientInterface, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			buf := newBufferedResponse()
			ww := middleware.NewWrapResponseWriter(buf, r.ProtoMajor)

			err := db.WithTx(r.Context(), func(txCtx context.Context) error {
				next.ServeHTTP(ww, r.WithContext(txCtx))

				if status := ww.Status(); status >= http.StatusBadRequest {
					return fmt.Errorf("request failed with status %d", status)
				}

				return nil
			})

			if err != nil && ww.Status() < http.StatusBadRequest {
				logger.Errorf("failed to commit %s %s: %v", r.Method, r.URL.Path, err)
				httptypes.WriteError(w, apperrors.Internal(err))
				return
			}

			if err != nil {
				logger.Debugf("transaction for %s %s not committed: %v", r.Method, r.URL.Path, err)
			}

			buf.flush(w)
		})
	}
}
