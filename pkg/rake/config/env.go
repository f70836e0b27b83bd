package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by the Loader
const (
	EnvStoplist       = "RAKE_STOPLIST"
	EnvLanguages      = "RAKE_LANGUAGES"
	EnvMinLength      = "RAKE_MIN_LENGTH"
	EnvFilterNumerics = "RAKE_FILTER_NUMERICS"
	EnvDB             = "RAKE_DB"
)

// env resolves variables from the process environment first, then from
// an optional dotenv file. The file never modifies the process environment.
type env struct {
	file map[string]string
}

func newEnv(path string) (*env, error) {
	if path == "" {
		return &env{}, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, err
	}
	return &env{file: vars}, nil
}

func (e *env) getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value := e.file[key]; value != "" {
		return value
	}
	return defaultValue
}

func (e *env) getEnvInt(key string, defaultValue int) int {
	if value := e.getEnv(key, ""); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (e *env) getEnvBool(key string, defaultValue bool) bool {
	if value := e.getEnv(key, ""); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func (e *env) getEnvList(key string, defaultValue []string) []string {
	value := e.getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
