// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidSince is returned for a since parameter that is not an
	// RFC 3339 timestamp.
	ErrInvalidSince = errors.New("invalid `since` parameter")

	// ErrReadingBody is returned when the request body cannot be read or
	// exceeds the size limit.
	ErrReadingBody = errors.New("error reading request body")
)
