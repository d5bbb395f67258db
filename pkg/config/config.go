package config

import "os"

// Config holds the process-level settings read from the environment.
type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	MetricsPort             string
	NewsBotEmail            string
	EnableJobs              bool
}

// Load reads configuration from the environment with defaults.
func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		MetricsPort:             getEnv("METRICS_PORT", "9090"),
		NewsBotEmail:            getEnv("NEWS_BOT_EMAIL", ""),
		EnableJobs:              getEnv("ENABLE_JOBS", "") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
