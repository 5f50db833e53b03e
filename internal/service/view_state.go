package service

import "sync"

// ViewState holds the latest view of one screen. Each load takes a sequence
// number from Begin and its result is only kept if no newer load began in the
// meantime, so a slow response can never overwrite a fresher one.
type ViewState[T any] struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
	value   T
}

func (v *ViewState[T]) Begin() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.issued++
	return v.issued
}

// Apply stores value if seq is the most recently issued sequence number.
func (v *ViewState[T]) Apply(seq uint64, value T) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.issued {
		return false
	}
	v.applied = seq
	v.value = value
	return true
}

// Current returns the applied value and its sequence number, 0 if none yet.
func (v *ViewState[T]) Current() (T, uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value, v.applied
}
