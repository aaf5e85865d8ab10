package cli

import "os"

// Config holds CLI configuration
type Config struct {
	// ServerAddr is the game server's TCP address
	ServerAddr string
	// HTTPURL is the base URL of the ops API
	HTTPURL string
	// Output selects the output format: text or json
	Output string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerAddr: getEnvOrDefault("BCHESS_SERVER", "localhost:1122"),
		HTTPURL:    getEnvOrDefault("BCHESS_HTTP", "http://localhost:8080"),
		Output:     "text",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
