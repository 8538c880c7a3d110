package parallel

// PartitionRows splits height rows into one contiguous RowRange per worker,
// in increasing order.
//
// Under EdgeCrop every range holds ⌊height/workers⌋ rows and the last
// height mod workers rows belong to no range. Under EdgeCover the remainder is
// spread one row at a time over the first ranges, so the ranges tile [0, height).
// When workers exceeds height some ranges are empty.
//
// Returns nil if height or workers is not positive.
func PartitionRows(height, workers int, policy EdgePolicy) []RowRange {
	if height <= 0 || workers <= 0 {
		return nil
	}

	base := height / workers
	extra := 0
	if policy == EdgeCover {
		extra = height % workers
	}

	ranges := make([]RowRange, workers)
	start := 0
	for i := range ranges {
		n := base
		if i < extra {
			n++
		}
		ranges[i] = RowRange{Start: start, End: start + n}
		start += n
	}
	return ranges
}

// CoveredRows returns the number of rows addressed by ranges.
func CoveredRows(ranges []RowRange) int {
	total := 0
	for _, r := range ranges {
		total += r.Len()
	}
	return total
}
