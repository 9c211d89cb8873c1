// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d local database DSN
//	-c/-config json file path with configs
//	-remote-mode remote transport (http, postgres)
//	-remote-address sync server address
//	-remote-database-uri remote PostgreSQL DSN
//	-request-timeout outbound request timeout (e.g., "30s", "1m")
//	-sync-interval background sync period
//	-dirty-policy dirty predicate (modified, stale)
//	-stale-threshold stale policy threshold
//	-max-parallel entity adapters run at once
//	-download enable the remote-to-local direction
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var remoteMode, remoteAddress, remoteDatabaseURI string
	var requestTimeout time.Duration
	var syncInterval, staleThreshold time.Duration
	var dirtyPolicy string
	var maxParallel int
	var download bool

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&remoteMode, "remote-mode", "", "Remote transport: http or postgres")
	flag.StringVar(&remoteAddress, "remote-address", "", "Sync server address")
	flag.StringVar(&remoteDatabaseURI, "remote-database-uri", "", "Remote PostgreSQL DSN")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync period (e.g., 1m)")
	flag.StringVar(&dirtyPolicy, "dirty-policy", "", "Dirty predicate: modified or stale")
	flag.DurationVar(&staleThreshold, "stale-threshold", 0, "Stale policy threshold (e.g., 15m)")
	flag.IntVar(&maxParallel, "max-parallel", 0, "Entity adapters run at once")
	flag.BoolVar(&download, "download", false, "Download remote changes before upload")

	flag.Parse()

	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Remote: Remote{
			Mode:           remoteMode,
			HTTPAddress:    remoteAddress,
			DatabaseURI:    remoteDatabaseURI,
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			Interval:       syncInterval,
			DirtyPolicy:    dirtyPolicy,
			StaleThreshold: staleThreshold,
			MaxParallel:    maxParallel,
			Download:       download,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
