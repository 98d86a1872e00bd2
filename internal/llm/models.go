package llm

// availableModels is the fixed set of chat models a request may select.
// Kept as an ordered list so the selection surface is stable.
var availableModels = []string{
	"qwen-qwq-32b",
	"deepseek-r1-distill-llama-70b",
	"gemma2-9b-it",
	"compound-beta",
	"compound-beta-mini",
	"distil-whisper-large-v3-en",
	"llama-3.1-8b-instant",
	"llama-3.3-70b-versatile",
	"llama-guard-3-8b",
	"llama3-70b-8192",
	"llama3-8b-8192",
	"meta-llama/llama-4-maverick-17b-128e-instruct",
	"meta-llama/llama-4-scout-17b-16e-instruct",
	"mistral-saba-24b",
	"whisper-large-v3",
	"whisper-large-v3-turbo",
	"playai-tts",
	"playai-tts-arabic",
	"allam-2-7b",
}

// AvailableModels returns the selectable chat model names in display order.
func AvailableModels() []string {
	models := make([]string, len(availableModels))
	copy(models, availableModels)
	return models
}

// IsAvailableModel reports whether name is in the selectable model list.
func IsAvailableModel(name string) bool {
	for _, m := range availableModels {
		if m == name {
			return true
		}
	}
	return false
}
