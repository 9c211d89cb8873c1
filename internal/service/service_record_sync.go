// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/internal/store"
	"github.com/MKhiriev/wealthwise-sync/internal/validators"
	"github.com/MKhiriev/wealthwise-sync/models"
)

// recordEndpoint hides the record type of one entity behind raw JSON.
type recordEndpoint interface {
	push(ctx context.Context, id string, body json.RawMessage) error
	changes(ctx context.Context, since time.Time) (models.ChangesResponse, error)
}

type typedEndpoint[T models.Syncable] struct {
	repo      store.RemoteRepositoryWithFeed[T]
	newRecord func() T
	validator validators.Validator
}

func (e *typedEndpoint[T]) push(ctx context.Context, id string, body json.RawMessage) error {
	record := e.newRecord()
	if err := json.Unmarshal(body, record); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if record.GetID() != id {
		return fmt.Errorf("%w: body id %q does not match %q", ErrInvalidDataProvided, record.GetID(), id)
	}
	if err := e.validator.Validate(ctx, record); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return e.repo.Upsert(ctx, record)
}

func (e *typedEndpoint[T]) changes(ctx context.Context, since time.Time) (models.ChangesResponse, error) {
	records, cursor, err := e.repo.ChangedSince(ctx, since)
	if err != nil {
		return models.ChangesResponse{}, err
	}

	raw := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return models.ChangesResponse{}, fmt.Errorf("%w: %w", store.ErrEncodingRecord, err)
		}
		raw = append(raw, data)
	}

	return models.ChangesResponse{Records: raw, Cursor: cursor, Length: len(raw)}, nil
}

type recordSyncService struct {
	endpoints map[models.EntityType]recordEndpoint

	logger *logger.Logger
}

// NewRecordSyncService serves the four entity types of storages.
func NewRecordSyncService(storages *store.RemoteStorages, validator validators.Validator, logger *logger.Logger) RecordSyncService {
	if validator == nil {
		validator = validators.NewRecordValidator()
	}

	return &recordSyncService{
		endpoints: map[models.EntityType]recordEndpoint{
			models.EntityAccount: &typedEndpoint[*models.Account]{
				repo: storages.Accounts, newRecord: func() *models.Account { return new(models.Account) }, validator: validator,
			},
			models.EntityTransaction: &typedEndpoint[*models.Transaction]{
				repo: storages.Transactions, newRecord: func() *models.Transaction { return new(models.Transaction) }, validator: validator,
			},
			models.EntityBudget: &typedEndpoint[*models.Budget]{
				repo: storages.Budgets, newRecord: func() *models.Budget { return new(models.Budget) }, validator: validator,
			},
			models.EntityGoal: &typedEndpoint[*models.Goal]{
				repo: storages.Goals, newRecord: func() *models.Goal { return new(models.Goal) }, validator: validator,
			},
		},
		logger: logger,
	}
}

func (s *recordSyncService) endpoint(entity models.EntityType) (recordEndpoint, error) {
	e, ok := s.endpoints[entity]
	if !ok {
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownEntity, entity)
	}
	return e, nil
}

func (s *recordSyncService) Push(ctx context.Context, entity models.EntityType, id string, body json.RawMessage) error {
	e, err := s.endpoint(entity)
	if err != nil {
		return err
	}
	return e.push(ctx, id, body)
}

func (s *recordSyncService) Changes(ctx context.Context, entity models.EntityType, since time.Time) (models.ChangesResponse, error) {
	e, err := s.endpoint(entity)
	if err != nil {
		return models.ChangesResponse{}, err
	}
	return e.changes(ctx, since)
}
