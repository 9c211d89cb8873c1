// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/wealthwise-sync/internal/config"
	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/internal/store"
	"github.com/MKhiriev/wealthwise-sync/internal/utils"
	"github.com/MKhiriev/wealthwise-sync/models"
)

const (
	recordPath  = "/api/sync/{entity}/{id}"
	changesPath = "/api/sync/{entity}"
)

// HTTPRemoteRepository is the remote copy of one entity type behind the
// sync server API:
//
//	PUT /api/sync/{entity}/{id}        body: the record
//	GET /api/sync/{entity}?since=...   → models.ChangesResponse
type HTTPRemoteRepository[T models.Syncable] struct {
	client    *utils.HTTPClient
	entity    models.EntityType
	newRecord func() T
	traceIDs  *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHTTPRemoteRepository builds a repository for entity on client.
// newRecord must return an empty, non-nil record to decode into.
func NewHTTPRemoteRepository[T models.Syncable](client *utils.HTTPClient, entity models.EntityType, newRecord func() T, logger *logger.Logger) (*HTTPRemoteRepository[T], error) {
	if !entity.IsValid() {
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownEntity, entity)
	}

	return &HTTPRemoteRepository[T]{
		client:    client,
		entity:    entity,
		newRecord: newRecord,
		traceIDs:  utils.NewUUIDGenerator(),
		logger:    logger.ForEntity(entity),
	}, nil
}

// NewHTTPRemotes builds the remote repositories of all entity types on a
// single client pointed at cfg.HTTPAddress.
func NewHTTPRemotes(cfg config.ClientRemote, logger *logger.Logger) (store.Remotes, error) {
	client, err := NewHTTPClient(cfg)
	if err != nil {
		return store.Remotes{}, err
	}

	accounts, err := NewHTTPRemoteRepository(client, models.EntityAccount, func() *models.Account { return new(models.Account) }, logger)
	if err != nil {
		return store.Remotes{}, err
	}
	transactions, err := NewHTTPRemoteRepository(client, models.EntityTransaction, func() *models.Transaction { return new(models.Transaction) }, logger)
	if err != nil {
		return store.Remotes{}, err
	}
	budgets, err := NewHTTPRemoteRepository(client, models.EntityBudget, func() *models.Budget { return new(models.Budget) }, logger)
	if err != nil {
		return store.Remotes{}, err
	}
	goals, err := NewHTTPRemoteRepository(client, models.EntityGoal, func() *models.Goal { return new(models.Goal) }, logger)
	if err != nil {
		return store.Remotes{}, err
	}

	logger.Info().Str("address", client.BaseURL).Msg("http remote configured")

	return store.Remotes{
		Accounts:     accounts,
		Transactions: transactions,
		Budgets:      budgets,
		Goals:        goals,
	}, nil
}

// NewHTTPClient returns a client with the base URL and timeout of cfg.
func NewHTTPClient(cfg config.ClientRemote) (*utils.HTTPClient, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return client, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Upsert implements [store.RemoteRepository].
func (h *HTTPRemoteRepository[T]) Upsert(ctx context.Context, record T) error {
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParams(map[string]string{"entity": h.entity.String(), "id": record.GetID()}).
		SetBody(record).
		Put(recordPath)
	if err != nil {
		return mapTransportError("push request", err)
	}

	return mapHTTPError(resp)
}

// ChangedSince implements [store.ChangeFeed]. A zero since asks for every
// record.
func (h *HTTPRemoteRepository[T]) ChangedSince(ctx context.Context, since time.Time) ([]T, time.Time, error) {
	var changes models.ChangesResponse

	req := h.request(ctx).
		SetPathParam("entity", h.entity.String()).
		SetResult(&changes)
	if !since.IsZero() {
		req.SetQueryParam("since", since.UTC().Format(time.RFC3339Nano))
	}

	resp, err := req.Get(changesPath)
	if err != nil {
		return nil, since, mapTransportError("changes request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, since, err
	}
	if resp.StatusCode() == http.StatusNoContent {
		return nil, since, nil
	}

	records := make([]T, 0, len(changes.Records))
	for _, raw := range changes.Records {
		record := h.newRecord()
		if err = json.Unmarshal(raw, record); err != nil {
			return nil, since, fmt.Errorf("%w: %w", ErrDecodingResponse, err)
		}
		records = append(records, record)
	}

	cursor := changes.Cursor
	if cursor.Before(since) {
		// a server must never move the cursor backwards
		cursor = since
	}

	h.logger.Debug().Int("records", len(records)).Time("cursor", cursor).Msg("changes pulled")

	return records, cursor, nil
}

// request starts a request that carries a trace id, generating one when
// ctx has none.
func (h *HTTPRemoteRepository[T]) request(ctx context.Context) *resty.Request {
	if _, ok := utils.GetTraceIDFromContext(ctx); !ok {
		ctx = utils.WithTraceID(ctx, h.traceIDs.Generate())
	}
	return h.client.R().SetContext(ctx)
}
