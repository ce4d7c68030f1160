// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import "sort"

// ColorPoint is a color control point.
type ColorPoint struct {
	Index int
	Color RGB
}

// OpacityPoint is an opacity control point.
type OpacityPoint struct {
	Index   int
	Opacity float64
}

// point is one entry of a pointMap.
type point[V any] struct {
	index int
	value V
}

// pointMap is a sparse mapping from index to value kept sorted by index,
// with at most one value per index.
type pointMap[V any] struct {
	pts []point[V]
}

func (m *pointMap[V]) search(index int) int {
	return sort.Search(len(m.pts), func(i int) bool {
		return m.pts[i].index >= index
	})
}

// set inserts or replaces the value at index.
func (m *pointMap[V]) set(index int, v V) {
	i := m.search(index)
	if i < len(m.pts) && m.pts[i].index == index {
		m.pts[i].value = v
		return
	}
	m.pts = append(m.pts, point[V]{})
	copy(m.pts[i+1:], m.pts[i:])
	m.pts[i] = point[V]{index: index, value: v}
}

// get returns the value at index.
func (m *pointMap[V]) get(index int) (V, bool) {
	i := m.search(index)
	if i < len(m.pts) && m.pts[i].index == index {
		return m.pts[i].value, true
	}
	var zero V
	return zero, false
}

// remove deletes the value at index and reports whether it existed.
func (m *pointMap[V]) remove(index int) bool {
	i := m.search(index)
	if i >= len(m.pts) || m.pts[i].index != index {
		return false
	}
	m.pts = append(m.pts[:i], m.pts[i+1:]...)
	return true
}

func (m *pointMap[V]) len() int {
	return len(m.pts)
}

func (m *pointMap[V]) reset() {
	m.pts = m.pts[:0]
}

// maxIndex returns the largest index, or -1 when empty.
func (m *pointMap[V]) maxIndex() int {
	if len(m.pts) == 0 {
		return -1
	}
	return m.pts[len(m.pts)-1].index
}
