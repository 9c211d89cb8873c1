// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"github.com/go-resty/resty/v2"
)

// TraceIDHeader carries the request trace id between client and server.
const TraceIDHeader = "X-Trace-ID"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Every request whose context carries a trace id (see [WithTraceID]) is sent
// with the [TraceIDHeader] header, so client and server log lines of one
// sync can be correlated.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client with its own connection pool.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().
//	    SetContext(utils.WithTraceID(ctx, id)).
//	    Get("https://sync.example.com/api/sync/account")
func NewHTTPClient() *HTTPClient {
	client := resty.New()
	client.OnBeforeRequest(propagateTraceID)

	return &HTTPClient{Client: client}
}

func propagateTraceID(_ *resty.Client, req *resty.Request) error {
	if req.Header.Get(TraceIDHeader) != "" {
		return nil
	}
	if traceID, ok := GetTraceIDFromContext(req.Context()); ok {
		req.SetHeader(TraceIDHeader, traceID)
	}
	return nil
}
