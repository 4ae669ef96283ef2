// Package driven defines the interfaces that core services call OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required interfaces
//
//   - Normaliser / NormaliserRegistry: decode a raw upload or fetched URL
//     into document text (C1).
//   - PostProcessor / PostProcessorPipeline: split document text into
//     chunks and attach keyword bags (C2, C3).
//   - EmbeddingProvider: generate vector embeddings for chunks and queries (C4).
//   - DocumentIndex: the hybrid chunk index and document registry (C5, C6).
//   - ConversationStore: bounded per-conversation history (C8).
//   - LLMProvider: a single language-model backend (C9).
//
// # Import rules
//
//   - Can import: domain package only.
//   - Cannot import: any adapter package.
package driven
