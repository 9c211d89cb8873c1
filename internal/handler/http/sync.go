// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/internal/utils"
	"github.com/MKhiriev/wealthwise-sync/models"
)

const maxRecordBodySize = 1 << 20

func (h *Handler) pushRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	entity := models.EntityType(chi.URLParam(r, "entity"))
	id := chi.URLParam(r, "id")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRecordBodySize))
	if err != nil {
		log.Err(err).Str("func", "*Handler.pushRecord").Msg("error reading request body")
		utils.WriteError(w, ErrReadingBody, http.StatusBadRequest)
		return
	}

	if err = h.services.RecordSyncService.Push(ctx, entity, id, body); err != nil {
		h.writeServiceError(w, r, "*Handler.pushRecord", err)
		return
	}

	log.Debug().
		Str(logger.FieldEntity, entity.String()).
		Str(logger.FieldRecordID, id).
		Msg("record stored")

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entity := models.EntityType(chi.URLParam(r, "entity"))

	since, err := parseSince(r.URL.Query().Get("since"))
	if err != nil {
		h.writeServiceError(w, r, "*Handler.listChanges", err)
		return
	}

	changes, err := h.services.RecordSyncService.Changes(ctx, entity, since)
	if err != nil {
		h.writeServiceError(w, r, "*Handler.listChanges", err)
		return
	}
	if changes.Records == nil {
		changes.Records = []json.RawMessage{}
	}

	utils.WriteJSON(w, changes, http.StatusOK)
}

// parseSince accepts an empty value as "from the beginning".
func parseSince(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	since, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidSince, err)
	}
	return since, nil
}

// writeServiceError answers with the status mapped from err. Details of
// server-side failures stay in the log.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Int("status", status).Msg("sync request failed")
		utils.WriteError(w, nil, status)
		return
	}

	log.Warn().Err(err).Str("func", funcName).Int("status", status).Msg("sync request rejected")
	utils.WriteError(w, err, status)
}
