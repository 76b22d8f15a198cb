package jobs

import "sarpipe/internal/lists"

// SplitThreshold is the pair count above which interferogram submission
// is partitioned into chained sub-lists so outstanding batch jobs never
// exceed the cluster's limit.
const SplitThreshold = 190

// SplitPairs partitions the pair sequence into left-to-right contiguous
// sub-lists of at most maxSize entries. No pair is reordered, dropped, or
// duplicated: concatenating the sub-lists reproduces the input exactly.
func SplitPairs(pairs []lists.Pair, maxSize int) [][]lists.Pair {
	if maxSize < 1 || len(pairs) == 0 {
		return nil
	}
	chunks := make([][]lists.Pair, 0, (len(pairs)+maxSize-1)/maxSize)
	for start := 0; start < len(pairs); start += maxSize {
		end := start + maxSize
		if end > len(pairs) {
			end = len(pairs)
		}
		chunks = append(chunks, pairs[start:end])
	}
	return chunks
}
