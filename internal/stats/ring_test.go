package stats

import "testing"

func TestRing(t *testing.T) {
	t.Run("EmptyRing", func(t *testing.T) {
		r := NewRing[int](5)
		if r.Len() != 0 {
			t.Errorf("Expected empty ring, got length %d", r.Len())
		}
		if items := r.Items(); len(items) != 0 {
			t.Errorf("Expected no items, got %d", len(items))
		}
	})

	t.Run("PartialFill", func(t *testing.T) {
		r := NewRing[int](5)
		for i := 0; i < 3; i++ {
			r.Append(i)
		}

		if r.Len() != 3 {
			t.Errorf("Expected length 3, got %d", r.Len())
		}

		items := r.Items()
		for i, v := range items {
			if v != i {
				t.Errorf("Expected items[%d]=%d, got %d", i, i, v)
			}
		}
	})

	t.Run("FIFOEviction", func(t *testing.T) {
		r := NewRing[int](5)
		for i := 0; i < 12; i++ {
			r.Append(i)
		}

		if r.Len() != 5 {
			t.Errorf("Expected length capped at 5, got %d", r.Len())
		}

		// Only the most recent 5 values remain, oldest first
		items := r.Items()
		want := []int{7, 8, 9, 10, 11}
		for i, v := range items {
			if v != want[i] {
				t.Errorf("Expected items[%d]=%d, got %d", i, want[i], v)
			}
		}
	})

	t.Run("LengthNeverExceedsCapacity", func(t *testing.T) {
		r := NewRing[int](7)
		for i := 0; i < 100; i++ {
			r.Append(i)
			if r.Len() > 7 {
				t.Fatalf("Length %d exceeded capacity after %d appends", r.Len(), i+1)
			}
		}
	})

	t.Run("ExactlyFull", func(t *testing.T) {
		r := NewRing[int](4)
		for i := 0; i < 4; i++ {
			r.Append(i)
		}

		if r.Len() != 4 {
			t.Errorf("Expected length 4, got %d", r.Len())
		}

		items := r.Items()
		for i, v := range items {
			if v != i {
				t.Errorf("Expected items[%d]=%d, got %d", i, i, v)
			}
		}
	})
}
