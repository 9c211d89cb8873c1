// Package config provides configuration loading, merging, and validation
// facilities for the sync daemon and the sync server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The entry points are [GetClientConfig] for the daemon and
// [GetServerConfig] for the sync server.
package config
