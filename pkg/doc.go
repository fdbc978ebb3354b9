// Package pkg provides the core libraries for Cumulus cloud layout.
//
// # Overview
//
// Cumulus turns weighted, labeled items into a spiral tag-cloud arrangement
// where visual size follows weight. The pkg directory is organized into five
// main areas:
//
//  1. [cloud] - The layout engine (weight normalization, spiral placement)
//  2. [layout] - Serialization types for item sets and computed layouts
//  3. [pipeline] - Orchestration (load → layout) with caching
//  4. [cache], [store] - Infrastructure (content-addressed caching, saved clouds)
//  5. [errors], [observability], [buildinfo] - Cross-cutting support
//
// # Architecture
//
// The typical data flow through Cumulus:
//
//	Item Set (JSON file / API request / store)
//	         ↓
//	pipeline.Runner.Load
//	         ↓
//	cloud.Compute (normalize → spiral placement)
//	         ↓
//	layout.Layout (JSON artifact / API response / store)
//
// The engine itself is pure and stateless; caching and persistence live
// entirely in the surrounding pipeline and store packages.
package pkg
