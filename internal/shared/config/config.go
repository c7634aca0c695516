package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
)

// Config holds application configuration. It is constructed once at startup
// and passed explicitly to every component that needs it.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	LocalStoreDir   string
	DatabaseURL     string

	// Summarization.
	GeminiAPIKey string
	GeminiModel  string

	// Spreadsheet target.
	SpreadsheetName    string
	DocumentBaseLink   string
	ServiceAccountFile string
	ServiceAccountJSON string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		LocalStoreDir:      getEnv("LOCAL_STORE_DIR", "./data"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		SpreadsheetName:    getEnv("SPREADSHEET_NAME", "VR-FOR-SURGERIES"),
		DocumentBaseLink:   os.Getenv("DOCUMENT_BASE_LINK"),
		ServiceAccountFile: os.Getenv("SERVICE_ACCOUNT_FILE"),
		ServiceAccountJSON: os.Getenv("SERVICE_ACCOUNT_JSON"),
	}
}

// Validate checks that the credentials required for pipeline runs are present
// and well formed. A failure here is fatal: the server must not start.
func (c Config) Validate() error {
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(c.SpreadsheetName) == "" {
		return fmt.Errorf("SPREADSHEET_NAME is required")
	}
	creds, err := c.ServiceAccount()
	if err != nil {
		return err
	}
	if _, err := google.JWTConfigFromJSON(creds); err != nil {
		return fmt.Errorf("service account key is malformed: %w", err)
	}
	return nil
}

// ServiceAccount returns the service-account key material, preferring the
// inline JSON over the key file path.
func (c Config) ServiceAccount() ([]byte, error) {
	if strings.TrimSpace(c.ServiceAccountJSON) != "" {
		return []byte(c.ServiceAccountJSON), nil
	}
	if strings.TrimSpace(c.ServiceAccountFile) == "" {
		return nil, fmt.Errorf("SERVICE_ACCOUNT_JSON or SERVICE_ACCOUNT_FILE is required")
	}
	data, err := os.ReadFile(c.ServiceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return data, nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
