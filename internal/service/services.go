// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/internal/store"
	"github.com/MKhiriev/wealthwise-sync/internal/validators"
)

// Services groups the server-side services.
type Services struct {
	AppInfoService    AppInfoService
	RecordSyncService RecordSyncService
}

func NewServices(storages *store.RemoteStorages, version string, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(version, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AppInfoService:    appInfo,
		RecordSyncService: NewRecordSyncService(storages, validators.NewRecordValidator(), logger),
	}, nil
}
