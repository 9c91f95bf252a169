package config

const (
	defaultLibraryDir = "~/Pictures"
	defaultReviewDir  = "~/.local/share/photokeep/review"
	defaultLogDir     = "~/.local/share/photokeep/logs"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultLLMBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel   = "google/gemini-3-flash-preview"
	defaultLLMReferer = "https://github.com/photokeep/photokeep"
	defaultLLMTitle   = "Photokeep Planner"
	defaultLLMTimeout = 60
)

// DefaultMaxRounds bounds the planning loop when planner.max_rounds is unset.
const DefaultMaxRounds = 30

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			ReviewDir:  defaultReviewDir,
			LogDir:     defaultLogDir,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Planner: Planner{
			MaxRounds: DefaultMaxRounds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
