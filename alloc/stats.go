package alloc

// Stats summarises the block list and the allocator's operation counters.
type Stats struct {
	Capacity      int `json:"capacity"`       // Buffer size, headers included
	Blocks        int `json:"blocks"`         // Entries on the block list
	FreeBlocks    int `json:"free_blocks"`    // Entries marked free
	UsedBytes     int `json:"used_bytes"`     // Payload bytes in allocated blocks
	FreeBytes     int `json:"free_bytes"`     // Payload bytes in free blocks
	OverheadBytes int `json:"overhead_bytes"` // Bytes consumed by headers
	LargestFree   int `json:"largest_free"`   // Largest request that can currently succeed

	AllocCalls   int `json:"alloc_calls"`
	FailedAllocs int `json:"failed_allocs"`
	FreeCalls    int `json:"free_calls"`
	InvalidFrees int `json:"invalid_frees"`
	Splits       int `json:"splits"`
	Merges       int `json:"merges"`
}

// UsedBlocks returns the number of allocated blocks.
func (s Stats) UsedBlocks() int {
	return s.Blocks - s.FreeBlocks
}

// Fragmentation returns 1 - LargestFree/FreeBytes, the share of free payload
// that is unusable for a single request of maximal size. It is 0 when the
// heap has one or no free block.
func (s Stats) Fragmentation() float64 {
	if s.FreeBytes == 0 {
		return 0
	}
	return 1 - float64(s.LargestFree)/float64(s.FreeBytes)
}

// Stats walks the block list and returns current statistics.
func (a *Allocator) Stats() Stats {
	s := Stats{
		Capacity:     len(a.buf),
		AllocCalls:   a.stats.AllocCalls,
		FailedAllocs: a.stats.FailedAllocs,
		FreeCalls:    a.stats.FreeCalls,
		InvalidFrees: a.stats.InvalidFrees,
		Splits:       a.stats.Splits,
		Merges:       a.stats.Merges,
	}
	a.Walk(func(b Block) bool {
		s.Blocks++
		s.OverheadBytes += HeaderSize
		if b.Free {
			s.FreeBlocks++
			s.FreeBytes += b.Size
			if b.Size > s.LargestFree {
				s.LargestFree = b.Size
			}
		} else {
			s.UsedBytes += b.Size
		}
		return true
	})
	return s
}
