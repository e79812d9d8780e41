// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package grouped

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Collection accumulates values under string keys, preserving the order in
// which keys were first seen and the order in which values were added to
// each key. It is built once by a single writer and is safe for concurrent
// readers afterwards.
type Collection[V any] struct {
	groups *orderedmap.OrderedMap[string, []V]
}

// New returns an empty Collection.
func New[V any]() *Collection[V] {
	return &Collection[V]{
		groups: orderedmap.New[string, []V](),
	}
}

// Add appends value to key's group, creating the group at the end of the
// key order if it does not exist yet.
func (c *Collection[V]) Add(key string, value V) {
	values, _ := c.groups.Get(key)
	c.groups.Set(key, append(values, value))
}

// Get returns the values stored under key and whether the key exists.
func (c *Collection[V]) Get(key string) ([]V, bool) {
	return c.groups.Get(key)
}

// Len returns the number of groups.
func (c *Collection[V]) Len() int {
	return c.groups.Len()
}

// Keys returns the group keys in first-seen order.
func (c *Collection[V]) Keys() []string {
	keys := make([]string, 0, c.groups.Len())
	for pair := c.groups.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// All iterates over the groups in first-seen key order. The collection is
// not consumed by iteration, so All may be called any number of times.
func (c *Collection[V]) All() iter.Seq2[string, []V] {
	return func(yield func(string, []V) bool) {
		for pair := c.groups.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}
