package llm

// SupportedModels is the fixed allow-list of completion model identifiers.
// Requests naming any other model are rejected before a call is made.
var SupportedModels = []string{
	"llama-3.3-70b-versatile",
	"llama-3.1-70b-versatile",
	"mixtral-8x7b-32768",
	"qwen/qwen3-32b",
	"groq/compound",
	"groq/compound-mini",
	"llama-3.1-8b-instant",
	"meta-llama/llama-4-maverick-17b-128e-instruct",
	"meta-llama/llama-4-scout-17b-16e-instruct",
	"meta-llama/llama-guard-4-12b",
	"moonshotai/kimi-k2-instruct-0905",
	"openai/gpt-oss-20b",
}

var supportedModels = func() map[string]bool {
	m := make(map[string]bool, len(SupportedModels))
	for _, id := range SupportedModels {
		m[id] = true
	}
	return m
}()

// IsSupportedModel reports whether id is in the allow-list.
func IsSupportedModel(id string) bool {
	return supportedModels[id]
}
