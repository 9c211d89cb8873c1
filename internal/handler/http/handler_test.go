// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/internal/mock"
	"github.com/MKhiriev/wealthwise-sync/internal/service"
)

type handlerMocks struct {
	records *mock.MockRecordSyncService
	appInfo *mock.MockAppInfoService
}

// newTestHandler builds a Handler over mocked services.
func newTestHandler(t *testing.T) (*Handler, handlerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := handlerMocks{
		records: mock.NewMockRecordSyncService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}
	h := NewHandler(&service.Services{
		RecordSyncService: m.records,
		AppInfoService:    m.appInfo,
	}, logger.Nop())

	return h, m
}

func TestNewHandler(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()

	h := NewHandler(svc, log)

	require.NotNil(t, h)
	assert.Same(t, svc, h.services)
	assert.Same(t, log, h.logger)
	assert.NotNil(t, h.traceIDs)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, logger.Nop())
	h2 := NewHandler(&service.Services{}, logger.Nop())

	assert.NotSame(t, h1, h2)
}
