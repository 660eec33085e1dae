// Package store persists Invocation Records to a flat recordings directory
// and retrieves them by filename pattern.
//
// The directory is the source of truth: append-only, one JSON file per
// recorded call, no update or delete operations. Find enumerates in
// filesystem order, which callers must treat as unordered.
//
// An optional SQLite catalog (Index) can be rebuilt from the directory at
// any time to serve listing and stats queries; it never becomes
// authoritative over the files.
package store
