// Package knowbase provides a local-first, retrieval-augmented knowledge base.
// It crawls web sources into collections of text pages, chunks and embeds the
// pages into a persisted vector index, and ranks indexed chunks against
// natural language queries to build bounded context for downstream AI calls.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, trafilatura/, gemini/).
package knowbase
