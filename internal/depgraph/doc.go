// Package depgraph holds the dependency graph model: an insertion-ordered
// directed graph built from file facts, plus the roll-up of file edges to
// folder granularity. Every analysis run owns its own graphs; nothing here
// is shared or cached across runs.
package depgraph
