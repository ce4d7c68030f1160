// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"fmt"
	"sync"
)

// TransferFunctionList is an ordered collection of transfer functions with
// one active entry, as attached to a volume.
type TransferFunctionList struct {
	mu     sync.RWMutex
	items  []*TransferFunction
	active int
}

// NewTransferFunctionList creates a list holding tfs. The last one becomes
// active. An empty list has no active function.
func NewTransferFunctionList(tfs ...*TransferFunction) *TransferFunctionList {
	l := &TransferFunctionList{active: -1}
	for _, tf := range tfs {
		l.Add(tf)
	}
	return l
}

// Add appends tf, makes it the active function and returns its index.
// A nil tf is replaced by DefaultTransferFunction.
func (l *TransferFunctionList) Add(tf *TransferFunction) int {
	if tf == nil {
		tf = DefaultTransferFunction()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, tf)
	l.active = len(l.items) - 1
	return l.active
}

// Len returns the number of transfer functions.
func (l *TransferFunctionList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// At returns the transfer function at index i.
func (l *TransferFunctionList) At(i int) (*TransferFunction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.items) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNoTransferFunction, i, len(l.items))
	}
	return l.items[i], nil
}

// SetActive selects the active transfer function.
func (l *TransferFunctionList) SetActive(i int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: index %d of %d", ErrNoTransferFunction, i, len(l.items))
	}
	l.active = i
	return nil
}

// ActiveIndex returns the index of the active function, or -1.
func (l *TransferFunctionList) ActiveIndex() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// Active returns the active transfer function, or nil for an empty list.
func (l *TransferFunctionList) Active() *TransferFunction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.active < 0 {
		return nil
	}
	return l.items[l.active]
}

// Remove deletes the function at index i. The active index follows the
// function it pointed at, or moves to the previous entry if that one was
// removed.
func (l *TransferFunctionList) Remove(i int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: index %d of %d", ErrNoTransferFunction, i, len(l.items))
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	if l.active >= i && l.active > 0 {
		l.active--
	}
	if len(l.items) == 0 {
		l.active = -1
	}
	return nil
}

// All returns a snapshot of the list in order.
func (l *TransferFunctionList) All() []*TransferFunction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*TransferFunction, len(l.items))
	copy(out, l.items)
	return out
}
