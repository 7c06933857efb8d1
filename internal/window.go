package internal

import (
	"iter"
)

// Window holds the most recent values pushed into it, up to a fixed size.
type Window[T comparable] struct {
	data  []T
	next  int
	count int
}

// NewWindow creates a window holding up to size values.
func NewWindow[T comparable](size int) *Window[T] {
	return &Window[T]{data: make([]T, size)}
}

// Push adds a value, dropping the oldest when full.
func (w *Window[T]) Push(value T) {
	if len(w.data) == 0 {
		return
	}
	w.data[w.next] = value
	w.next = (w.next + 1) % len(w.data)
	if w.count < len(w.data) {
		w.count++
	}
}

// Full returns true when the window holds its maximum number of values.
func (w *Window[T]) Full() bool {
	return w.count == len(w.data)
}

// Reset empties the window.
func (w *Window[T]) Reset() {
	w.next = 0
	w.count = 0
}

// at returns the n-th oldest value held.
func (w *Window[T]) at(n int) T {
	start := w.next - w.count + len(w.data)
	return w.data[(start+n)%len(w.data)]
}

// All iterates over the values held, oldest first.
func (w *Window[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := range w.count {
			if !yield(w.at(n)) {
				return
			}
		}
	}
}

// Distinct returns the number of distinct values held.
func (w *Window[T]) Distinct() (count int) {
	for n := range w.count {
		value := w.at(n)
		seen := false
		for m := range n {
			if w.at(m) == value {
				seen = true
				break
			}
		}
		if !seen {
			count++
		}
	}
	return
}
