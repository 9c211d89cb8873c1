// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/wealthwise-sync/internal/clock"
	"github.com/MKhiriev/wealthwise-sync/internal/store"
	"github.com/MKhiriev/wealthwise-sync/internal/validators"
	"github.com/MKhiriev/wealthwise-sync/models"
)

// upsertFunc adapts a function to store.RemoteRepository.
type upsertFunc[T models.Syncable] func(ctx context.Context, rec T) error

func (f upsertFunc[T]) Upsert(ctx context.Context, rec T) error { return f(ctx, rec) }

func TestNewEntitySyncAdapter_Errors(t *testing.T) {
	local := newMemLocal(cloneAccount)
	tracker := NewChangeTracker[*models.Account](local, nil, nil)

	_, err := NewEntitySyncAdapter("wallet", EntitySyncAdapterDeps[*models.Account]{
		Local: local, Remote: newMemRemote(cloneAccount), Tracker: tracker,
	}, AdapterOptions{})
	assert.ErrorIs(t, err, store.ErrUnknownEntity)

	_, err = NewEntitySyncAdapter(models.EntityAccount, EntitySyncAdapterDeps[*models.Account]{
		Local: local, Tracker: tracker,
	}, AdapterOptions{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	a, err := NewEntitySyncAdapter(models.EntityAccount, EntitySyncAdapterDeps[*models.Account]{
		Local: local, Remote: newMemRemote(cloneAccount), Tracker: tracker,
	}, AdapterOptions{})
	require.NoError(t, err)
	assert.Equal(t, models.EntityAccount, a.Entity())
}

func TestEntitySyncAdapter_SyncUp_NothingDirty(t *testing.T) {
	h := newAccountHarness(ModifiedPolicy{}, AdapterOptions{},
		account("a", models.TimePtr(at(10)), models.TimePtr(at(20))),
	)

	result, err := h.adapter.SyncUp(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.EntitySyncResult{Entity: models.EntityAccount}, result)
	assert.Zero(t, h.remote.upsertCount())
}

func TestEntitySyncAdapter_SyncUp_PushesDirtyAccounts(t *testing.T) {
	ctx := context.Background()
	h := newAccountHarness(ModifiedPolicy{}, AdapterOptions{},
		account("a", models.TimePtr(at(10)), nil),
		account("b", models.TimePtr(at(20)), nil),
		account("c", models.TimePtr(at(30)), nil),
	)

	result, err := h.adapter.SyncUp(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Uploaded)
	assert.Zero(t, result.Failed)

	for _, id := range []string{"a", "b", "c"} {
		rec := h.local.get(id)
		require.NotNil(t, rec.LastSyncedAt, id)
		assert.False(t, rec.LastSyncedAt.Before(*rec.UpdatedAt), id)

		pushed, ok := h.remote.get(id)
		require.True(t, ok, id)
		assert.Nil(t, pushed.LastSyncedAt, "sync bookkeeping must stay local")
	}

	// второй прогон ничего не отправляет
	result, err = h.adapter.SyncUp(ctx)
	require.NoError(t, err)
	assert.Zero(t, result.Uploaded)
	assert.Equal(t, 3, h.remote.upsertCount())
}

func TestEntitySyncAdapter_SyncUp_PartialFailure(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFakeClock(at(60))

	local := newMemLocal(cloneTransaction,
		transaction("tx-1", models.TimePtr(at(1))),
		transaction("tx-2", models.TimePtr(at(2))),
		transaction("tx-3", models.TimePtr(at(3))),
		transaction("tx-4", models.TimePtr(at(4))),
	)
	remote := newMemRemote(cloneTransaction)
	remote.upsertErr = func(id string) error {
		if id == "tx-3" {
			return errRejected
		}
		return nil
	}

	tracker := NewChangeTracker[*models.Transaction](local, nil, clk)
	adapter, err := NewEntitySyncAdapter(models.EntityTransaction, EntitySyncAdapterDeps[*models.Transaction]{
		Local: local, Remote: remote, Tracker: tracker, Clock: clk,
	}, AdapterOptions{})
	require.NoError(t, err)

	result, err := adapter.SyncUp(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Uploaded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "tx-3", result.Failures[0].ID)
	assert.Contains(t, result.Failures[0].Error, errRejected.Error())

	assert.True(t, tracker.NeedsSync(local.get("tx-3")))
	for _, id := range []string{"tx-1", "tx-2", "tx-4"} {
		assert.False(t, tracker.NeedsSync(local.get(id)), id)
	}

	// после восстановления remote запись уходит со следующим циклом
	remote.upsertErr = nil
	result, err = adapter.SyncUp(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Uploaded)
	assert.False(t, tracker.NeedsSync(local.get("tx-3")))
}

func TestEntitySyncAdapter_SyncUp_InvalidRecordIsNotPushed(t *testing.T) {
	broken := account("broken", models.TimePtr(at(10)), nil)
	broken.Currency = "rupees"

	local := newMemLocal(cloneAccount, broken, account("ok", models.TimePtr(at(10)), nil))
	remote := newMemRemote(cloneAccount)
	clk := clock.NewFakeClock(at(60))

	adapter, err := NewEntitySyncAdapter(models.EntityAccount, EntitySyncAdapterDeps[*models.Account]{
		Local:     local,
		Remote:    remote,
		Tracker:   NewChangeTracker[*models.Account](local, nil, clk),
		Validator: validators.NewRecordValidator(),
		Clock:     clk,
	}, AdapterOptions{})
	require.NoError(t, err)

	result, err := adapter.SyncUp(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Uploaded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "broken", result.Failures[0].ID)

	_, pushed := remote.get("broken")
	assert.False(t, pushed)
	assert.Nil(t, local.get("broken").LastSyncedAt)
}

func TestEntitySyncAdapter_SyncUp_RemoteUnavailableAborts(t *testing.T) {
	h := newAccountHarness(ModifiedPolicy{}, AdapterOptions{},
		account("a", models.TimePtr(at(10)), nil),
		account("b", models.TimePtr(at(20)), nil),
		account("c", models.TimePtr(at(30)), nil),
	)
	h.remote.upsertErr = func(string) error {
		return fmt.Errorf("dial tcp 10.0.0.1:443: %w", store.ErrRemoteUnavailable)
	}

	result, err := h.adapter.SyncUp(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrRemoteUnavailable)
	assert.Zero(t, result.Uploaded)
	assert.Equal(t, 1, h.remote.upsertCount())

	for _, id := range []string{"a", "b", "c"} {
		assert.Nil(t, h.local.get(id).LastSyncedAt, id)
	}
}

func TestEntitySyncAdapter_SyncUp_CancelledContext(t *testing.T) {
	h := newAccountHarness(ModifiedPolicy{}, AdapterOptions{},
		account("a", models.TimePtr(at(10)), nil),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.adapter.SyncUp(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, h.remote.upsertCount())
}

func TestEntitySyncAdapter_SyncUp_DeletedBeforePush(t *testing.T) {
	ctx := context.Background()
	h := newAccountHarness(ModifiedPolicy{}, AdapterOptions{},
		account("a", models.TimePtr(at(10)), nil),
		account("b", models.TimePtr(at(20)), nil),
		account("c", models.TimePtr(at(30)), nil),
	)
	h.local.beforeGet = func(id string) {
		if id == "b" {
			_ = h.local.Delete(ctx, "b")
		}
	}

	result, err := h.adapter.SyncUp(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Uploaded)
	assert.Zero(t, result.Failed)

	_, ok := h.remote.get("b")
	assert.False(t, ok, "deleted record must not reach the remote store")
}

func TestEntitySyncAdapter_SyncUp_PushTimeoutIsPerRecord(t *testing.T) {
	local := newMemLocal(cloneAccount, account("a", models.TimePtr(at(10)), nil))
	clk := clock.NewFakeClock(at(60))

	slow := upsertFunc[*models.Account](func(ctx context.Context, _ *models.Account) error {
		<-ctx.Done()
		return ctx.Err()
	})

	adapter, err := NewEntitySyncAdapter(models.EntityAccount, EntitySyncAdapterDeps[*models.Account]{
		Local: local, Remote: slow, Tracker: NewChangeTracker[*models.Account](local, nil, clk), Clock: clk,
	}, AdapterOptions{PushTimeout: 10 * time.Millisecond})
	require.NoError(t, err)

	result, err := adapter.SyncUp(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Nil(t, local.get("a").LastSyncedAt)
}

func TestEntitySyncAdapter_SyncUp_ClockBehindRecord(t *testing.T) {
	// запись из будущего: часы устройства отстают
	h := newAccountHarness(ModifiedPolicy{}, AdapterOptions{},
		account("a", models.TimePtr(at(120)), nil),
	)

	_, err := h.adapter.SyncUp(context.Background())
	require.NoError(t, err)

	assert.Equal(t, at(120), *h.local.get("a").LastSyncedAt)
	assert.False(t, ModifiedPolicy{}.NeedsSync(h.local.get("a"), h.clock.Now()))
}

func TestEntitySyncAdapter_SyncUp_StalePolicy(t *testing.T) {
	h := newAccountHarness(StalePolicy{Threshold: 15 * time.Minute}, AdapterOptions{},
		account("recent", models.TimePtr(at(58)), models.TimePtr(at(55))),
		account("old", models.TimePtr(at(1)), models.TimePtr(at(30))),
	)

	result, err := h.adapter.SyncUp(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Uploaded)
	_, ok := h.remote.get("old")
	assert.True(t, ok)
	_, ok = h.remote.get("recent")
	assert.False(t, ok, "synced within the threshold")
}

func TestEntitySyncAdapter_SyncDown_NewRemoteRecord(t *testing.T) {
	h := newAccountHarness(ModifiedPolicy{}, AdapterOptions{Download: true})
	h.remote.put(account("b", models.TimePtr(at(20)), nil))

	result, err := h.adapter.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Downloaded)
	assert.Zero(t, result.Uploaded)

	saved := h.local.get("b")
	require.NotNil(t, saved)
	require.NotNil(t, saved.LastSyncedAt)
	assert.False(t, ModifiedPolicy{}.NeedsSync(saved, h.clock.Now()))

	cursor, _ := h.checkpoints.GetCheckpoint(context.Background(), models.EntityAccount)
	assert.True(t, cursor.After(t0))
}

func TestEntitySyncAdapter_SyncDown_OverwritesCleanRecord(t *testing.T) {
	local := account("a", models.TimePtr(at(10)), models.TimePtr(at(15)))
	local.Name = "local"
	h := newAccountHarness(ModifiedPolicy{}, AdapterOptions{Download: true}, local)

	remote := account("a", models.TimePtr(at(20)), nil)
	remote.Name = "remote"
	h.remote.put(remote)

	result, err := h.adapter.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Downloaded)
	assert.Zero(t, result.ConflictsResolved)
	assert.Equal(t, "remote", h.local.get("a").Name)
}

func TestEntitySyncAdapter_SyncDown_RemoteWinsConflict(t *testing.T) {
	local := account("a", models.TimePtr(at(10)), models.TimePtr(at(5)))
	local.Name = "local"
	h := newAccountHarness(ModifiedPolicy{}, AdapterOptions{Download: true}, local)

	remote := account("a", models.TimePtr(at(20)), nil)
	remote.Name = "remote"
	h.remote.put(remote)

	result, err := h.adapter.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.ConflictsResolved)
	assert.Equal(t, 1, result.Downloaded)
	assert.Zero(t, result.Uploaded)
	assert.Zero(t, h.remote.upsertCount())
	assert.Equal(t, "remote", h.local.get("a").Name)
}

func TestEntitySyncAdapter_SyncDown_LocalWinsConflict(t *testing.T) {
	local := account("a", models.TimePtr(at(30)), models.TimePtr(at(5)))
	local.Name = "local"
	h := newAccountHarness(ModifiedPolicy{}, AdapterOptions{Download: true}, local)

	remote := account("a", models.TimePtr(at(20)), nil)
	remote.Name = "remote"
	h.remote.put(remote)

	result, err := h.adapter.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.ConflictsResolved)
	assert.Zero(t, result.Downloaded)
	assert.Equal(t, 1, result.Uploaded)

	pushed, ok := h.remote.get("a")
	require.True(t, ok)
	assert.Equal(t, "local", pushed.Name)
	assert.Equal(t, "local", h.local.get("a").Name)
}

// Download must not overwrite an unpushed edit, whatever policy schedules
// uploads.
func TestEntitySyncAdapter_Sync_DownloadUnderEachPolicy(t *testing.T) {
	type want struct {
		name       string
		downloaded int
		conflicts  int
		uploaded   int
	}

	tests := []struct {
		name   string
		local  *models.Account
		remote *models.Account
		want   map[string]want
	}{
		{
			name:   "edit inside the stale window beats an older remote",
			local:  named(account("a", models.TimePtr(at(50)), models.TimePtr(at(45))), "local-edit"),
			remote: named(account("a", models.TimePtr(at(40)), nil), "older-remote"),
			want: map[string]want{
				"modified": {name: "local-edit", conflicts: 1, uploaded: 1},
				// загрузка ждёт окна, но правка сохраняется локально
				"stale": {name: "local-edit", conflicts: 1},
			},
		},
		{
			name:   "newer remote beats a local edit",
			local:  named(account("a", models.TimePtr(at(50)), models.TimePtr(at(45))), "local-edit"),
			remote: named(account("a", models.TimePtr(at(55)), nil), "newer-remote"),
			want: map[string]want{
				"modified": {name: "newer-remote", conflicts: 1, downloaded: 1},
				"stale":    {name: "newer-remote", conflicts: 1, downloaded: 1},
			},
		},
		{
			name:   "stale but unmodified record is overwritten without conflict",
			local:  named(account("a", models.TimePtr(at(10)), models.TimePtr(at(20))), "local"),
			remote: named(account("a", models.TimePtr(at(30)), nil), "remote"),
			want: map[string]want{
				"modified": {name: "remote", downloaded: 1},
				"stale":    {name: "remote", downloaded: 1},
			},
		},
	}

	policies := map[string]DirtyPolicy{
		"modified": ModifiedPolicy{},
		"stale":    StalePolicy{Threshold: 15 * time.Minute},
	}

	for _, tt := range tests {
		for policyName, policy := range policies {
			t.Run(tt.name+"/"+policyName, func(t *testing.T) {
				h := newAccountHarness(policy, AdapterOptions{Download: true}, cloneAccount(tt.local))
				h.remote.put(cloneAccount(tt.remote))

				result, err := h.adapter.Sync(context.Background())
				require.NoError(t, err)

				w := tt.want[policyName]
				assert.Equal(t, w.downloaded, result.Downloaded, "downloaded")
				assert.Equal(t, w.conflicts, result.ConflictsResolved, "conflicts")
				assert.Equal(t, w.uploaded, result.Uploaded, "uploaded")
				assert.Equal(t, w.name, h.local.get("a").Name)
			})
		}
	}
}

func named(a *models.Account, name string) *models.Account {
	a.Name = name
	return a
}

func TestEntitySyncAdapter_Sync_IgnoresEchoOfOwnPush(t *testing.T) {
	ctx := context.Background()
	h := newAccountHarness(ModifiedPolicy{}, AdapterOptions{Download: true},
		account("a", models.TimePtr(at(10)), nil),
		account("b", models.TimePtr(at(20)), nil),
	)

	first, err := h.adapter.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Uploaded)

	second, err := h.adapter.Sync(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.Uploaded)
	assert.Zero(t, second.Downloaded)
	assert.Zero(t, second.ConflictsResolved)
	assert.Equal(t, 2, h.remote.upsertCount())
}

func TestEntitySyncAdapter_SyncDown_FailureKeepsCheckpoint(t *testing.T) {
	ctx := context.Background()
	h := newAccountHarness(ModifiedPolicy{}, AdapterOptions{Download: true})
	h.remote.put(account("b", models.TimePtr(at(20)), nil))
	h.local.saveErr = errors.New("database is locked")

	result, err := h.adapter.SyncDown(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Zero(t, result.Downloaded)

	cursor, _ := h.checkpoints.GetCheckpoint(ctx, models.EntityAccount)
	assert.True(t, cursor.IsZero())

	// запись подтягивается повторно
	h.local.saveErr = nil
	result, err = h.adapter.SyncDown(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Downloaded)
}

func TestEntitySyncAdapter_Sync_FeedErrorStopsBeforeUpload(t *testing.T) {
	h := newAccountHarness(ModifiedPolicy{}, AdapterOptions{Download: true},
		account("a", models.TimePtr(at(10)), nil),
	)
	h.remote.feedErr = fmt.Errorf("list changes: %w", store.ErrRemoteUnavailable)

	_, err := h.adapter.Sync(context.Background())

	assert.ErrorIs(t, err, store.ErrRemoteUnavailable)
	assert.Zero(t, h.remote.upsertCount())
}

func TestEntitySyncAdapter_Sync_UploadOnly(t *testing.T) {
	tests := []struct {
		name   string
		remote func(r *memRemote[*models.Account]) store.RemoteRepository[*models.Account]
		opts   AdapterOptions
	}{
		{
			name:   "remote without change feed",
			remote: func(r *memRemote[*models.Account]) store.RemoteRepository[*models.Account] { return uploadOnly[*models.Account]{remote: r} },
			opts:   AdapterOptions{Download: true},
		},
		{
			name:   "download disabled",
			remote: func(r *memRemote[*models.Account]) store.RemoteRepository[*models.Account] { return r },
			opts:   AdapterOptions{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := clock.NewFakeClock(at(60))
			local := newMemLocal(cloneAccount, account("a", models.TimePtr(at(10)), nil))
			remote := newMemRemote(cloneAccount)
			remote.put(account("b", models.TimePtr(at(20)), nil))

			adapter, err := NewEntitySyncAdapter(models.EntityAccount, EntitySyncAdapterDeps[*models.Account]{
				Local:       local,
				Remote:      tt.remote(remote),
				Checkpoints: newMemCheckpoints(),
				Tracker:     NewChangeTracker[*models.Account](local, nil, clk),
				Clock:       clk,
			}, tt.opts)
			require.NoError(t, err)

			result, err := adapter.Sync(context.Background())

			require.NoError(t, err)
			assert.Equal(t, 1, result.Uploaded)
			assert.Zero(t, result.Downloaded)
			assert.Zero(t, result.ConflictsResolved)
			assert.Nil(t, local.get("b"))
		})
	}
}
