// Package mode tracks the most frequent item of a stream.
package mode

// Finder keeps items ranked by count in O(1) per Add. On a tie the mode is
// the item that reached the top count first.
type Finder[T comparable] struct {
	index map[T]int   // rank of each item
	count map[T]int   // occurrences of each item
	first map[int]int // lowest rank holding a given count
	items []T
}

func New[T comparable]() *Finder[T] {
	return &Finder[T]{
		index: make(map[T]int),
		count: make(map[T]int),
		first: make(map[int]int),
	}
}

// Add records one occurrence of item.
func (f *Finder[T]) Add(item T) {
	i, ok := f.index[item]
	if !ok {
		f.index[item] = len(f.items)
		f.count[item] = 1
		f.items = append(f.items, item)
		if _, ok := f.first[1]; !ok {
			f.first[1] = len(f.items) - 1
		}
		return
	}

	c := f.count[item]
	// Move item to the front of its count block, then promote it.
	j := f.first[c]
	if j != i {
		other := f.items[j]
		f.items[i], f.items[j] = other, item
		f.index[other], f.index[item] = i, j
	}
	if j+1 < len(f.items) && f.count[f.items[j+1]] == c {
		f.first[c] = j + 1
	} else {
		delete(f.first, c)
	}
	f.count[item] = c + 1
	if _, ok := f.first[c+1]; !ok {
		f.first[c+1] = j
	}
}

// Mode returns the most frequent item, or false when nothing was added.
func (f *Finder[T]) Mode() (T, bool) {
	if len(f.items) == 0 {
		var zero T
		return zero, false
	}
	return f.items[0], true
}

// Count returns how many times item was added.
func (f *Finder[T]) Count(item T) int { return f.count[item] }

// Len returns the number of distinct items.
func (f *Finder[T]) Len() int { return len(f.items) }

// Reset forgets everything.
func (f *Finder[T]) Reset() {
	clear(f.index)
	clear(f.count)
	clear(f.first)
	f.items = f.items[:0]
}
