// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache provides a small generic LRU cache.
//
// It memoizes derived data that is expensive to recompute and keyed by all
// of its inputs, such as classified volumes keyed by field, transform and
// range. Because every input is part of the key, a changed input simply
// misses and the stale entry ages out.
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
