// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/wealthwise-sync/internal/service"
	"github.com/MKhiriev/wealthwise-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrValidation:          http.StatusBadRequest,
	ErrInvalidSince:                http.StatusBadRequest,
	ErrReadingBody:                 http.StatusBadRequest,

	store.ErrUnknownEntity:     http.StatusNotFound,
	store.ErrRemoteUnavailable: http.StatusServiceUnavailable,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
	store.ErrEncodingRecord:       http.StatusInternalServerError,
	store.ErrDecodingRecord:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
