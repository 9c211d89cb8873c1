// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResponseWriter(rr *httptest.ResponseRecorder) *responseWriter {
	return &responseWriter{ResponseWriter: rr}
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	tests := []struct {
		name           string
		statusCodes    []int
		expectedStatus int
	}{
		{
			name:           "200 OK",
			statusCodes:    []int{http.StatusOK},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "204 No Content",
			statusCodes:    []int{http.StatusNoContent},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "503 Service Unavailable",
			statusCodes:    []int{http.StatusServiceUnavailable},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "double call, first wins",
			statusCodes:    []int{http.StatusAccepted, http.StatusBadRequest},
			expectedStatus: http.StatusAccepted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := newResponseWriter(rr)

			for _, code := range tt.statusCodes {
				w.WriteHeader(code)
			}

			assert.True(t, w.wroteHeader)
			assert.Equal(t, tt.expectedStatus, w.status)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestResponseWriter_Write(t *testing.T) {
	t.Run("implicit 200", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := newResponseWriter(rr)

		n, err := w.Write([]byte("hello"))
		require.NoError(t, err)

		assert.Equal(t, 5, n)
		assert.Equal(t, http.StatusOK, w.status)
		assert.Equal(t, "hello", rr.Body.String())
	})

	t.Run("size accumulates", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := newResponseWriter(rr)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("abc"))
		_, _ = w.Write([]byte("defg"))

		assert.Equal(t, 7, w.size)
		assert.Equal(t, http.StatusCreated, w.status)
		assert.Equal(t, "abcdefg", rr.Body.String())
	})

	t.Run("empty write", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := newResponseWriter(rr)

		n, err := w.Write(nil)
		require.NoError(t, err)

		assert.Zero(t, n)
		assert.Zero(t, w.size)
		assert.True(t, w.wroteHeader)
	})
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriter(rr)

	assert.Same(t, rr, w.Unwrap())
}
