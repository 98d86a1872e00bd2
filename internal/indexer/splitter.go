package indexer

import (
	"strings"
	"unicode/utf8"
)

// RecursiveSplitter splits text into overlapping chunks, preferring the most
// natural boundary available: paragraph breaks first, then line breaks,
// sentence ends, word boundaries, and finally raw character positions.
// Lengths are counted in runes so multi-byte text sizes consistently.
type RecursiveSplitter struct {
	separators []string
}

// NewRecursiveSplitter creates a splitter with the default separator
// priority. The empty string terminates the list and means "split anywhere".
func NewRecursiveSplitter() *RecursiveSplitter {
	return &RecursiveSplitter{
		separators: []string{"\n\n", "\n", ". ", " ", ""},
	}
}

// Split breaks text into chunks of at most chunkSize runes where adjacent
// chunks share a trailing/leading overlap of up to overlap runes, pulled
// from the source text at the boundary. Chunk order matches order of
// appearance in the source. Empty text yields no chunks.
func (s *RecursiveSplitter) Split(text string, chunkSize, overlap int) []string {
	if text == "" {
		return nil
	}
	if chunkSize < 1 {
		chunkSize = 1
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}
	if overlap < 0 {
		overlap = 0
	}
	return s.split(text, chunkSize, overlap, s.separators)
}

func (s *RecursiveSplitter) split(text string, size, overlap int, seps []string) []string {
	if utf8.RuneCountInString(text) <= size {
		return []string{text}
	}

	sep := seps[0]
	if sep == "" {
		return hardSplit(text, size, overlap)
	}

	// Keep the separator attached to the preceding piece so joining pieces
	// reconstructs the source exactly.
	pieces := strings.SplitAfter(text, sep)

	var chunks []string
	var current []string
	curLen := 0

	for _, piece := range pieces {
		pl := utf8.RuneCountInString(piece)
		if pl == 0 {
			continue
		}

		// A piece that alone exceeds the limit recurses with the next
		// separator in priority order.
		if pl > size {
			if curLen > 0 {
				chunks = append(chunks, strings.Join(current, ""))
				current = nil
				curLen = 0
			}
			chunks = append(chunks, s.split(piece, size, overlap, seps[1:])...)
			continue
		}

		if curLen+pl > size {
			chunks = append(chunks, strings.Join(current, ""))
			current, curLen = overlapTail(current, overlap, size-pl)
		}
		current = append(current, piece)
		curLen += pl
	}

	if curLen > 0 {
		chunks = append(chunks, strings.Join(current, ""))
	}
	return chunks
}

// overlapTail returns the longest suffix of pieces whose total rune length
// fits in both maxOverlap and room, so the next chunk starts with the
// overlap yet still stays under the size limit once its first piece is
// added.
func overlapTail(pieces []string, maxOverlap, room int) ([]string, int) {
	if maxOverlap > room {
		maxOverlap = room
	}

	total := 0
	i := len(pieces)
	for i > 0 {
		pl := utf8.RuneCountInString(pieces[i-1])
		if total+pl > maxOverlap {
			break
		}
		total += pl
		i--
	}
	return append([]string(nil), pieces[i:]...), total
}

// hardSplit cuts at raw rune boundaries with a sliding window, used when no
// separator keeps a piece under the limit.
func hardSplit(text string, size, overlap int) []string {
	runes := []rune(text)
	stride := size - overlap
	if stride < 1 {
		stride = 1
	}

	var chunks []string
	for start := 0; start < len(runes); start += stride {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
