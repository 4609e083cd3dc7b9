package allocator

// Mmap backs allocations with anonymous private mappings outside the Go heap.
//
// On linux growing and shrinking is done in place or by moving the mapping with
// mremap, so content is never copied by user code. On other platforms Mmap
// behaves like Heap.
//
// Slices returned by Mmap must never be retained after Free: the pages are
// unmapped and any access faults.
type Mmap struct{}
