package gui

import "sync"

// Cleanable is implemented by stores that need frame-based cleanup.
// Each frame, stale entries (not accessed this frame) are removed.
type Cleanable interface {
	Cleanup(currentFrame uint64)
}

// RegisterStore adds a store to the context's cleanup list. NewFrame cleans
// every registered store, so state of widgets that stop being submitted is
// dropped one frame later.
func (ctx *Context) RegisterStore(store Cleanable) {
	ctx.stores = append(ctx.stores, store)
}

func (ctx *Context) cleanupStores() {
	for _, store := range ctx.stores {
		store.Cleanup(ctx.FrameCount)
	}
}

// stateEntry wraps a state value with frame tracking for staleness detection.
type stateEntry[T any] struct {
	value     T
	lastFrame uint64
}

// FrameStore is a type-safe store for per-widget state that automatically
// cleans up unused entries each frame.
//
// Usage:
//
//	scrollStore := gui.NewFrameStore[ScrollState]()
//	ctx.RegisterStore(scrollStore)
//
//	// In widget code
//	state := scrollStore.Get(id, ScrollState{})
//	state.Y += 10 // Direct modification
type FrameStore[T any] struct {
	states map[ID]*stateEntry[T]
	frame  uint64
	mu     sync.RWMutex // Protects concurrent access
}

// NewFrameStore creates a new type-safe state store. Register it on a Context
// with RegisterStore to get automatic cleanup.
func NewFrameStore[T any]() *FrameStore[T] {
	return &FrameStore[T]{
		states: make(map[ID]*stateEntry[T]),
	}
}

// Get retrieves state for the given ID, or creates it with defaultVal if not found.
// Returns a pointer to the state, allowing direct modification.
// The state is automatically marked as "used this frame" to prevent cleanup.
func (s *FrameStore[T]) Get(id ID, defaultVal T) *T {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.states[id]; ok {
		entry.lastFrame = s.frame
		return &entry.value
	}
	entry := &stateEntry[T]{
		value:     defaultVal,
		lastFrame: s.frame,
	}
	s.states[id] = entry
	return &entry.value
}

// GetIfExists retrieves state only if it already exists.
// Returns nil if no state exists for this ID.
// Does NOT create default state or mark as used.
func (s *FrameStore[T]) GetIfExists(id ID) *T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if entry, ok := s.states[id]; ok {
		return &entry.value
	}
	return nil
}

// Set explicitly sets state for an ID.
// Creates or updates the entry and marks it as used this frame.
func (s *FrameStore[T]) Set(id ID, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.states[id]; ok {
		entry.value = value
		entry.lastFrame = s.frame
	} else {
		s.states[id] = &stateEntry[T]{
			value:     value,
			lastFrame: s.frame,
		}
	}
}

// Delete explicitly removes state for an ID.
func (s *FrameStore[T]) Delete(id ID) {
	s.mu.Lock()
	delete(s.states, id)
	s.mu.Unlock()
}

// Cleanup removes all entries that weren't accessed in the previous frame
// and makes frame the current one.
func (s *FrameStore[T]) Cleanup(frame uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frame = frame
	if frame == 0 {
		return
	}
	threshold := frame - 1
	for id, entry := range s.states {
		if entry.lastFrame < threshold {
			delete(s.states, id)
		}
	}
}

// Len returns the number of stored entries.
func (s *FrameStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}

// Clear removes all entries immediately.
func (s *FrameStore[T]) Clear() {
	s.mu.Lock()
	s.states = make(map[ID]*stateEntry[T])
	s.mu.Unlock()
}
