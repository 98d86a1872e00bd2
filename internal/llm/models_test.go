package llm

import "testing"

func TestAvailableModels(t *testing.T) {
	models := AvailableModels()
	if len(models) == 0 {
		t.Fatal("AvailableModels() returned no models")
	}
	if models[0] != "qwen-qwq-32b" {
		t.Errorf("AvailableModels() first = %q, want qwen-qwq-32b", models[0])
	}

	// The returned slice is a copy; mutating it must not affect the list.
	models[0] = "mutated"
	if AvailableModels()[0] != "qwen-qwq-32b" {
		t.Error("AvailableModels() returned the internal slice")
	}
}

func TestIsAvailableModel(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{"known model", "llama-3.3-70b-versatile", true},
		{"namespaced model", "meta-llama/llama-4-scout-17b-16e-instruct", true},
		{"unknown model", "gpt-99", false},
		{"empty name", "", false},
		{"case sensitive", "LLAMA3-8B-8192", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailableModel(tt.model); got != tt.want {
				t.Errorf("IsAvailableModel(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}
