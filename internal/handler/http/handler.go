// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/internal/service"
	"github.com/MKhiriev/wealthwise-sync/internal/utils"
)

type Handler struct {
	services *service.Services
	traceIDs *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		traceIDs: utils.NewUUIDGenerator(),
		logger:   logger,
	}
}
