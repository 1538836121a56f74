// Package config provides configuration loading, merging, and validation
// facilities for the integration hub server.
//
// Configuration is assembled from multiple sources; earlier sources win for
// fields they set:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Defaults are applied to the merged result before validation. The main
// entry point is [GetStructuredConfig].
package config
