// Package services implements the core business logic: ingestion (C1-C6),
// the chat router (C7), and the gateways that orchestrate the embedding and
// LLM provider adapters (C4, C9). Services depend only on the driven ports
// and the domain package; they are called directly by the driving adapters
// (internal/adapters/driving/http, internal/adapters/driving/cli).
package services
