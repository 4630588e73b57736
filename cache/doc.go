// Package cache memoizes expensive lookups such as template parsing and
// template path resolution.
//
// A Store computes the value for a key at most once and returns the stored
// result on every later call. Failed computations are not stored, so the
// next call for the same key tries again. Entries never expire: a Store
// assumes the data it fronts (a template tree on disk) is immutable for the
// life of the process.
//
// Two implementations are provided. MemoryStore holds one lock across the
// whole lookup-compute-store sequence, serializing all computations.
// FlightStore deduplicates per key, so different keys compute in parallel.
package cache
