package stats

// Ring is a fixed-capacity FIFO buffer laid out as a circular array with a
// head index and a full flag. Once full, each append overwrites the oldest
// entry. Not safe for concurrent use; the owning store serializes access.
type Ring[T any] struct {
	buf  []T
	head int
	full bool
}

// NewRing creates a ring with the given capacity.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Append pushes v, evicting the oldest entry when the ring is full.
func (r *Ring[T]) Append(v T) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
	if r.head == 0 {
		r.full = true
	}
}

// Len returns the number of stored entries.
func (r *Ring[T]) Len() int {
	if r.full {
		return len(r.buf)
	}
	return r.head
}

// Items returns the stored entries in insertion order, oldest first.
func (r *Ring[T]) Items() []T {
	size := r.Len()
	out := make([]T, 0, size)

	start := 0
	if r.full {
		start = r.head
	}
	for i := 0; i < size; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}
