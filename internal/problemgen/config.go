package problemgen

// Config tunes the LLMGenerator.
type Config struct {
	Checks      []Check // run in order; the first rejection wins
	MaxTokens   int
	Temperature float64
	History     int // prior questions remembered and sent as "do not repeat"
	Attempts    int // requests per exercise before falling back
}

// DefaultConfig returns the settings the app runs with.
func DefaultConfig() Config {
	return Config{
		Checks:      []Check{CheckShape},
		MaxTokens:   512,
		Temperature: 0.9,
		History:     8,
		Attempts:    2,
	}
}
