package lot

import "container/heap"

// freeSlots is a min-heap of vacant slot ids. The closest free slot is always at index 0.
type freeSlots []int

var _ heap.Interface = (*freeSlots)(nil)

// newFreeSlots returns a heap holding every id in 1..capacity
func newFreeSlots(capacity int) *freeSlots {
	ids := make(freeSlots, capacity)
	for i := range ids {
		ids[i] = i + 1
	}
	heap.Init(&ids)
	return &ids
}

func (f freeSlots) Len() int           { return len(f) }
func (f freeSlots) Less(i, j int) bool { return f[i] < f[j] }
func (f freeSlots) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *freeSlots) Push(x any) {
	*f = append(*f, x.(int))
}

func (f *freeSlots) Pop() any {
	old := *f
	n := len(old)
	id := old[n-1]
	*f = old[:n-1]
	return id
}

// take removes and returns the lowest vacant id
func (f *freeSlots) take() int {
	return heap.Pop(f).(int)
}

// release makes id vacant again
func (f *freeSlots) release(id int) {
	heap.Push(f, id)
}
