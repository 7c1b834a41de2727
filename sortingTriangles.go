package signboard

// sortingTriangle is used specifically for sorting triangles when rendering. Less data means more data fits in cache,
// which means sorting is faster.
type sortingTriangle struct {
	index int // Index into the draw list being sorted
	depth float32
}

type sortingTriangleBucket struct {
	bins [][]sortingTriangle
}

func newSortingTriangleBucket(binCount int) *sortingTriangleBucket {
	if binCount < 1 {
		binCount = 1
	}
	return &sortingTriangleBucket{bins: make([][]sortingTriangle, binCount)}
}

// Sort distributes the triangles into depth bins between minRange and maxRange; triangles within one bin keep their insertion order.
func (s *sortingTriangleBucket) Sort(tris []sortingTriangle, minRange, maxRange float32) {

	for i := range s.bins {
		s.bins[i] = s.bins[i][:0]
	}

	binCount := len(s.bins)
	rangeDiff := maxRange - minRange

	if rangeDiff == 0 {
		rangeDiff = 0.001
	}

	for _, t := range tris {

		targetBin := 0

		if binCount > 1 {
			depth := (t.depth - minRange) / rangeDiff * float32(binCount)
			if depth < 0 {
				depth = 0
			} else if depth > float32(binCount-1) {
				depth = float32(binCount - 1)
			}
			targetBin = int(depth)
		}

		s.bins[targetBin] = append(s.bins[targetBin], t)

	}

}

// ForEachBackToFront calls forEach for every sorted triangle, starting with the farthest bin.
func (s *sortingTriangleBucket) ForEachBackToFront(forEach func(index int)) {
	for binIndex := len(s.bins) - 1; binIndex >= 0; binIndex-- {
		for _, t := range s.bins[binIndex] {
			forEach(t.index)
		}
	}
}
