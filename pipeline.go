package scenegraph

import "sync"

// task splits data into contiguous chunks, one goroutine per chunk, and
// waits for all of them.
func task[T any](workersCount int, data []T, fn func(data T)) {
	if len(data) == 0 {
		return
	}
	workersCount = min(max(workersCount, 1), len(data))
	chunkSize := (len(data) + workersCount - 1) / workersCount

	var wg sync.WaitGroup
	for start := 0; start < len(data); start += chunkSize {
		end := min(start+chunkSize, len(data))
		wg.Add(1)
		go func(chunk []T) {
			defer wg.Done()
			for _, d := range chunk {
				fn(d)
			}
		}(data[start:end])
	}
	wg.Wait()
}

// Update recomputes every stale world matrix ahead of a render pass. Each
// root subtree is handled by a single goroutine; subtrees share no edges,
// so no two goroutines touch the same transform.
func (s *Scene) Update() {
	task(max(DEFAULT_WORKERS, s.Workers), s.Roots(), func(root NodeID) {
		for _, t := range s.Walk(root) {
			t.WorldMatrix()
		}
	})
}
