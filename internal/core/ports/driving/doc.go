// Package driving defines what the CLI, the MCP server and the directory
// watcher may ask of the core: manage documents, ingest them, rebuild the
// index, answer similarity queries and edit settings.
//
// Implementations live in internal/core/services.
package driving
