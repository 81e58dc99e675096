// Package llm provides the model caller, fallback orchestration, and
// provider clients for all LLM-backed tasks in the portfolio engine.
package llm

// DefaultModel is the model tried first when the caller has no preference.
const DefaultModel = "google/gemma-3-12b-it:free"

// FallbackModels is the fixed priority list of free-tier models tried after
// the preferred one. Order matters: stronger models first.
var FallbackModels = []string{
	"google/gemma-3-12b-it:free",
	"google/gemma-3-4b-it:free",
	"meta-llama/llama-3.3-70b-instruct:free",
	"meta-llama/llama-3.2-3b-instruct:free",
	"mistralai/mistral-small-3.1-24b-instruct:free",
	"deepseek/deepseek-r1-0528:free",
	"qwen/qwen3-4b:free",
}

// ModelList builds the ordered candidate list for one orchestration call:
// the preferred model (or DefaultModel when empty) first, then the fallback
// sequence with the preferred entry de-duplicated. No model appears twice.
func ModelList(preferred string) []string {
	if preferred == "" {
		preferred = DefaultModel
	}

	models := make([]string, 0, len(FallbackModels)+1)
	models = append(models, preferred)
	for _, m := range FallbackModels {
		if m != preferred {
			models = append(models, m)
		}
	}
	return models
}
