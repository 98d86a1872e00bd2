package indexer

const (
	// targetChunkCount is the number of chunks the sizing heuristic aims
	// for across the whole corpus.
	targetChunkCount = 20
	// minChunkSize and maxChunkSize bound the computed chunk size in
	// characters.
	minChunkSize = 1000
	maxChunkSize = 5000
	// overlapRatio is the fraction of the chunk size shared between
	// adjacent chunks.
	overlapRatio = 0.1
)

// ComputeChunkSize picks a chunk size for a corpus of textLength characters,
// targeting around targetChunkCount chunks and clamping the result to
// [minChunkSize, maxChunkSize]. Total over its domain: zero-length text
// yields minChunkSize.
//
// totalBytes is the summed byte size of the uploaded files. The current
// policy does not use it; it is accepted so future heuristics (e.g. scaling
// with scanned-PDF density) can refine the estimate without changing the
// call sites.
func ComputeChunkSize(textLength int, totalBytes int64) int {
	_ = totalBytes

	estimated := textLength / targetChunkCount
	if estimated < minChunkSize {
		estimated = minChunkSize
	}
	if estimated > maxChunkSize {
		estimated = maxChunkSize
	}
	return estimated
}

// Overlap derives the chunk overlap from a chunk size: 10%, truncated.
func Overlap(chunkSize int) int {
	return int(float64(chunkSize) * overlapRatio)
}
