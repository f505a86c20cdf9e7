// Package cli implements the command-line interface for edison-soccer.
//
// The cli package provides the Cobra-based CLI with three commands. scrape runs one
// aggregation and prints the bundle as text tables or JSON, serve holds one
// aggregation in memory behind the read-only HTTP API, and mcp exposes the same
// queries as MCP tools over stdio. It coordinates the config, scraper, aggregator,
// api and tools packages.
package cli
