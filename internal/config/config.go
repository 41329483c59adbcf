package config

import "os"

// Weight units configurable on the host platform.
const (
	WeightUnitKgs = "kgs"
	WeightUnitLbs = "lbs"
)

// Stage constants define the possible deployment/runtime environments.
const (
	StageProd  = "prod"
	StageDev   = "dev"
	StageLocal = "local"
)

// Config holds the service configuration, sourced from the environment.
type Config struct {
	Stage       string
	APIPort     string
	DatabaseURL string
	WeightUnit  string
}

// FromEnv builds a Config from environment variables, applying
// defaults for everything except the database URL.
func FromEnv() *Config {
	return &Config{
		Stage:       getEnvWithDefault("STAGE", StageDev),
		APIPort:     getEnvWithDefault("API_PORT", "8000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		WeightUnit:  getEnvWithDefault("WEIGHT_UNIT", WeightUnitKgs),
	}
}

// IsValidWeightUnit checks if the provided unit is one of the defined
// weight units.
func IsValidWeightUnit(unit string) bool {
	switch unit {
	case WeightUnitKgs, WeightUnitLbs:
		return true
	default:
		return false
	}
}

func getEnvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
