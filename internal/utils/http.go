// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the body written by [WriteError].
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON serializes data and writes it with statusCode and a JSON
// content type. If marshaling fails it responds with 500 and returns the
// wrapped error instead.
//
// Example usage:
//
//	WriteJSON(w, models.ChangesResponse{...}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes err as {"error": "..."} with statusCode.
func WriteError(w http.ResponseWriter, err error, statusCode int) {
	msg := http.StatusText(statusCode)
	if err != nil {
		msg = err.Error()
	}
	_, _ = WriteJSON(w, ErrorResponse{Error: msg}, statusCode)
}
