// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package parallel

import (
	"runtime"
	"sync"
)

// Chunk is a half-open index range [Lo, Hi).
type Chunk struct {
	Lo, Hi int
}

// Chunks splits [start, end) into at most parts contiguous, non-empty chunks
// of nearly equal size. It returns nil for an empty range.
func Chunks(start, end, parts int) []Chunk {
	total := end - start
	if total <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > total {
		parts = total
	}

	size := (total + parts - 1) / parts
	chunks := make([]Chunk, 0, parts)
	for lo := start; lo < end; lo += size {
		hi := lo + size
		if hi > end {
			hi = end
		}
		chunks = append(chunks, Chunk{Lo: lo, Hi: hi})
	}
	return chunks
}

// ForRange runs fn over [start, end) split among up to workers goroutines
// and waits for all of them. If workers is 0 or negative, GOMAXPROCS is used.
func ForRange(start, end, workers int, fn func(lo, hi int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunks := Chunks(start, end, workers)
	if len(chunks) == 1 {
		fn(chunks[0].Lo, chunks[0].Hi)
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for _, c := range chunks {
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(c.Lo, c.Hi)
	}
	wg.Wait()
}
