// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/wealthwise-sync/internal/clock"
	"github.com/MKhiriev/wealthwise-sync/internal/store"
	"github.com/MKhiriev/wealthwise-sync/models"
)

// In-memory stand-ins for the generic repositories. gomock mocks are used
// for the non-generic collaborators; these fakes keep state between calls,
// which the end to end scenarios rely on.

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return t0.Add(time.Duration(minutes) * time.Minute)
}

func cloneAccount(a *models.Account) *models.Account {
	c := *a
	return &c
}

func cloneTransaction(tx *models.Transaction) *models.Transaction {
	c := *tx
	return &c
}

func account(id string, updated *time.Time, synced *time.Time) *models.Account {
	a := &models.Account{Name: "Account " + id, Kind: models.AccountChecking, Currency: "INR"}
	a.ID = id
	a.UpdatedAt = updated
	a.LastSyncedAt = synced
	return a
}

func transaction(id string, updated *time.Time) *models.Transaction {
	tx := &models.Transaction{AccountID: "acc-1", AmountMinor: 100, Currency: "INR"}
	tx.ID = id
	tx.UpdatedAt = updated
	return tx
}

// ── local ────────────────────────────────────────────────────────────────────

type memLocal[T models.Syncable] struct {
	mu      sync.Mutex
	records map[string]T
	clone   func(T) T

	// beforeGet runs before every Get, outside the lock.
	beforeGet func(id string)
	saveErr   error
	queryErr  error
}

func newMemLocal[T models.Syncable](clone func(T) T, records ...T) *memLocal[T] {
	m := &memLocal[T]{records: make(map[string]T), clone: clone}
	for _, r := range records {
		m.records[r.GetID()] = clone(r)
	}
	return m
}

func (m *memLocal[T]) QueryDirty(_ context.Context, rule models.DirtyRule) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queryErr != nil {
		return nil, m.queryErr
	}

	var out []T
	for _, r := range m.records {
		last := r.GetLastSyncedAt()
		updated := r.GetUpdatedAt()
		switch rule.Mode {
		case models.DirtyModeModified:
			if last == nil || (updated != nil && updated.After(*last)) {
				out = append(out, m.clone(r))
			}
		case models.DirtyModeStale:
			if last == nil || last.Before(rule.Now.Add(-rule.Threshold)) {
				out = append(out, m.clone(r))
			}
		default:
			return nil, store.ErrUnknownDirtyMode
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetID() < out[j].GetID() })
	return out, nil
}

func (m *memLocal[T]) Get(_ context.Context, id string) (T, error) {
	if m.beforeGet != nil {
		m.beforeGet(id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		var zero T
		return zero, store.ErrRecordNotFound
	}
	return m.clone(r), nil
}

func (m *memLocal[T]) Save(_ context.Context, records ...T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	for _, r := range records {
		m.records[r.GetID()] = m.clone(r)
	}
	return nil
}

func (m *memLocal[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *memLocal[T]) MarkSynced(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil
	}
	r.SetLastSyncedAt(&at)
	return nil
}

func (m *memLocal[T]) get(id string) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[id]
}

// ── remote ───────────────────────────────────────────────────────────────────

type memRemote[T models.Syncable] struct {
	mu      sync.Mutex
	records map[string]T
	changed map[string]time.Time
	clone   func(T) T
	seq     time.Time

	upserts   int
	upsertErr func(id string) error
	feedErr   error
}

func newMemRemote[T models.Syncable](clone func(T) T) *memRemote[T] {
	return &memRemote[T]{
		records: make(map[string]T),
		changed: make(map[string]time.Time),
		clone:   clone,
		seq:     t0,
	}
}

// put stores rec as if another device had pushed it.
func (m *memRemote[T]) put(rec T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putLocked(rec)
}

func (m *memRemote[T]) putLocked(rec T) {
	c := m.clone(rec)
	c.SetLastSyncedAt(nil)
	m.seq = m.seq.Add(time.Second)
	m.records[rec.GetID()] = c
	m.changed[rec.GetID()] = m.seq
}

func (m *memRemote[T]) Upsert(ctx context.Context, rec T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.upsertErr != nil {
		if err := m.upsertErr(rec.GetID()); err != nil {
			return err
		}
	}
	m.putLocked(rec)
	return nil
}

func (m *memRemote[T]) ChangedSince(_ context.Context, since time.Time) ([]T, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.feedErr != nil {
		return nil, since, m.feedErr
	}

	ids := make([]string, 0, len(m.records))
	for id, ch := range m.changed {
		if ch.After(since) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return m.changed[ids[i]].Before(m.changed[ids[j]]) })

	cursor := since
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.clone(m.records[id]))
		cursor = m.changed[id]
	}
	return out, cursor, nil
}

func (m *memRemote[T]) get(id string) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	return r, ok
}

func (m *memRemote[T]) upsertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upserts
}

// uploadOnly hides the change feed of a remote.
type uploadOnly[T models.Syncable] struct {
	remote *memRemote[T]
}

func (u uploadOnly[T]) Upsert(ctx context.Context, rec T) error {
	return u.remote.Upsert(ctx, rec)
}

// ── checkpoints ──────────────────────────────────────────────────────────────

type memCheckpoints struct {
	mu      sync.Mutex
	cursors map[models.EntityType]time.Time
}

func newMemCheckpoints() *memCheckpoints {
	return &memCheckpoints{cursors: make(map[models.EntityType]time.Time)}
}

func (m *memCheckpoints) GetCheckpoint(_ context.Context, entity models.EntityType) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursors[entity], nil
}

func (m *memCheckpoints) SetCheckpoint(_ context.Context, entity models.EntityType, cursor time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursors[entity] = cursor
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

var errRejected = errors.New("remote rejected record")

type accountHarness struct {
	local       *memLocal[*models.Account]
	remote      *memRemote[*models.Account]
	checkpoints *memCheckpoints
	clock       *clock.FakeClock
	adapter     *EntitySyncAdapter[*models.Account]
}

func newAccountHarness(policy DirtyPolicy, opts AdapterOptions, records ...*models.Account) *accountHarness {
	h := &accountHarness{
		local:       newMemLocal(cloneAccount, records...),
		remote:      newMemRemote(cloneAccount),
		checkpoints: newMemCheckpoints(),
		clock:       clock.NewFakeClock(at(60)),
	}

	adapter, err := NewEntitySyncAdapter(models.EntityAccount, EntitySyncAdapterDeps[*models.Account]{
		Local:       h.local,
		Remote:      h.remote,
		Checkpoints: h.checkpoints,
		Tracker:     NewChangeTracker[*models.Account](h.local, policy, h.clock),
		Clock:       h.clock,
	}, opts)
	if err != nil {
		panic(err)
	}
	h.adapter = adapter
	return h
}
