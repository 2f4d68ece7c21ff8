/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cache implements the engine's per-run memoization layer (C8): a
// small keyed store that holds one computed value per project for the
// duration of a single engine run, and invalidates itself the instant the
// repository's head commit changes underneath it.
//
// A Cache is deliberately not safe for concurrent use; the engine loop
// that owns it runs single-threaded (see the engine package), so no
// synchronization is needed.
package cache

import "dirpx.dev/monover/core/model/git"

// Cache memoizes one value of type T per project name, valid only as long
// as the head commit it was validated against has not changed.
type Cache[T any] struct {
	head    git.Hash
	entries map[string]T
}

// New returns an empty Cache, not yet validated against any head commit.
func New[T any]() *Cache[T] {
	return &Cache[T]{entries: make(map[string]T)}
}

// ValidateAndInvalidate compares headSHA against the head the cache was
// last validated against and, if they differ, clears every entry before
// recording headSHA as the new baseline. It reports whether invalidation
// occurred. A freshly constructed Cache's head is the zero Hash, so the
// first call always invalidates (trivially, since there is nothing to
// clear) and establishes the run's head commit.
func (c *Cache[T]) ValidateAndInvalidate(headSHA git.Hash) bool {
	if c.head.Equal(headSHA) {
		return false
	}
	c.entries = make(map[string]T)
	c.head = headSHA
	return true
}

// Get returns the cached value for project, if any.
func (c *Cache[T]) Get(project string) (T, bool) {
	v, ok := c.entries[project]
	return v, ok
}

// Set records value as the cached result for project.
func (c *Cache[T]) Set(project string, value T) {
	c.entries[project] = value
}

// ClearAll discards every cached entry and resets the cache's recorded
// head commit, forcing the next ValidateAndInvalidate call to report an
// invalidation regardless of the head it is passed.
func (c *Cache[T]) ClearAll() {
	c.entries = make(map[string]T)
	c.head = ""
}

// Len returns the number of entries currently cached.
func (c *Cache[T]) Len() int {
	return len(c.entries)
}
