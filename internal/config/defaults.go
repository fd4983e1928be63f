package config

// Document file names inside the configuration directory.
const (
	settingsDoc = "settings.yaml"
	modelsDoc   = "models.yaml"
	toolsDoc    = "tools.yaml"
	securityDoc = "security_policies.yaml"
)

// Default overlay documents written on first run. Both are inert until
// edited: the tool overlay repeats the compiled-in extension defaults and
// the security overlay overrides nothing.
const defaultToolsYAML = `# Per-tool settings merged into the extension map.
code_quality:
  lint: false
  format: false
  test: false
browser:
  headless: true
`

const defaultSecurityYAML = `# Overrides for security fields and sandbox command lists.
policies: {}
`

// defaultModelEntry returns a registry entry with compiled-in field defaults.
// Absent keys in models.yaml leave these values in place.
func defaultModelEntry(name string) ModelConfig {
	return ModelConfig{
		Name:        name,
		MaxTokens:   128000,
		Temperature: 0.7,
		Timeout:     60,
		Retries:     3,
		Enabled:     true,
	}
}

// defaultModels is the seed registry written on first run. Entries ship
// disabled with an empty api_key; users enable them after adding credentials.
func defaultModels() []ModelConfig {
	entry := func(name, model, details string, maxTokens int, temp float64, caps ...string) ModelConfig {
		m := defaultModelEntry(name)
		m.BaseURL = "https://openrouter.ai/api/v1"
		m.Model = model
		m.Details = details
		m.MaxTokens = maxTokens
		m.Temperature = temp
		m.Capabilities = caps
		m.Enabled = false
		return m
	}
	return []ModelConfig{
		entry("devstral_small", "mistralai/devstral-small:free",
			"24B agentic model tuned for software engineering tasks.",
			128000, 0.7, "coding", "agents", "file_editing"),
		entry("llama_3_3_8b", "meta-llama/llama-3.3-8b-instruct:free",
			"Lightweight Llama 3.3 variant for quick responses.",
			128000, 0.7, "general", "fast_response"),
		entry("phi_4_reasoning", "microsoft/phi-4-reasoning-plus:free",
			"14B model tuned for math, science and code reasoning.",
			128000, 0.3, "reasoning", "math", "science", "coding"),
		entry("deepseek_v3", "deepseek/deepseek-chat-v3-0324:free",
			"685B mixture-of-experts chat model with a large context window.",
			163840, 0.7, "general", "conversation", "large_context"),
		entry("qwen3_30b", "qwen/qwen3-30b-a3b:free",
			"Dense/MoE hybrid strong at reasoning, multilingual and agent tasks.",
			131072, 0.7, "reasoning", "multilingual", "agents", "creative_writing"),
	}
}

// taskPreferences maps a task type to an ordered model preference list.
// Task types without an entry fall back to the full registry in stored order.
var taskPreferences = map[string][]string{
	"coding":       {"devstral_small", "phi_4_reasoning"},
	"reasoning":    {"phi_4_reasoning", "qwen3_30b"},
	"general":      {"deepseek_v3", "llama_3_3_8b"},
	"fast":         {"llama_3_3_8b"},
	"agents":       {"devstral_small", "qwen3_30b"},
	"multilingual": {"qwen3_30b", "deepseek_v3"},
}
