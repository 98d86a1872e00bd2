package indexer

import "testing"

func TestComputeChunkSize(t *testing.T) {
	tests := []struct {
		name       string
		textLength int
		totalBytes int64
		want       int
	}{
		{
			name:       "zero length text floors at minimum",
			textLength: 0,
			totalBytes: 0,
			want:       1000,
		},
		{
			name:       "short text floors at minimum",
			textLength: 5000,
			totalBytes: 5000,
			want:       1000,
		},
		{
			name:       "just below minimum threshold",
			textLength: 19999,
			totalBytes: 19999,
			want:       1000,
		},
		{
			name:       "mid-range text divides by target count",
			textLength: 40000,
			totalBytes: 40000,
			want:       2000,
		},
		{
			name:       "large text caps at maximum",
			textLength: 100000,
			totalBytes: 100000,
			want:       5000,
		},
		{
			name:       "very large text stays capped",
			textLength: 10000000,
			totalBytes: 10000000,
			want:       5000,
		},
		{
			name:       "total bytes does not influence the size",
			textLength: 40000,
			totalBytes: 1 << 30,
			want:       2000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeChunkSize(tt.textLength, tt.totalBytes)
			if got != tt.want {
				t.Errorf("ComputeChunkSize(%d, %d) = %d, want %d", tt.textLength, tt.totalBytes, got, tt.want)
			}
		})
	}
}

func TestComputeChunkSize_Bounds(t *testing.T) {
	for textLength := 0; textLength <= 200000; textLength += 1717 {
		got := ComputeChunkSize(textLength, int64(textLength))
		if got < 1000 || got > 5000 {
			t.Fatalf("ComputeChunkSize(%d) = %d, want value in [1000, 5000]", textLength, got)
		}
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		chunkSize int
		want      int
	}{
		{1000, 100},
		{2000, 200},
		{5000, 500},
		{1234, 123}, // truncated, not rounded
		{0, 0},
	}

	for _, tt := range tests {
		got := Overlap(tt.chunkSize)
		if got != tt.want {
			t.Errorf("Overlap(%d) = %d, want %d", tt.chunkSize, got, tt.want)
		}
	}
}
