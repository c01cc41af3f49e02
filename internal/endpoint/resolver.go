package endpoint

import (
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"

	"github.com/agentdeck/agentdeck/internal/config"
)

// Placeholder is returned when no configuration source yields an endpoint.
// Callers must treat it as "not configured" and surface a notice.
const Placeholder = "https://example.invalid/agent"

// BuildDefault can be baked into the binary at link time:
//
//	go build -ldflags "-X github.com/agentdeck/agentdeck/internal/endpoint.BuildDefault=https://agent.example.com/run"
var BuildDefault string

// envFile is the dotenv file consulted by the dotenv providers.
const envFile = ".env"

var urlPattern = regexp.MustCompile(`(?i)^https?://`)

// Provider is a single named configuration source. Keeping the chain as an
// explicit list makes resolution order testable without a real environment.
type Provider struct {
	Name   string
	Lookup func() string
}

// Resolve walks the providers in order and returns the first non-empty
// value along with the name of the source that supplied it. When every
// source is empty it returns the placeholder.
func Resolve(providers []Provider) (string, string) {
	for _, p := range providers {
		if v := strings.TrimSpace(p.Lookup()); v != "" {
			return v, p.Name
		}
	}
	return Placeholder, "placeholder"
}

// DefaultProviders builds the standard chain, highest priority first:
// explicit override, persisted config, host environment, dotenv under two
// alternate names, link-time default.
func DefaultProviders(override string, cfg *config.Config) []Provider {
	return []Provider{
		{Name: "flag", Lookup: func() string { return override }},
		{Name: "config", Lookup: func() string {
			if cfg == nil {
				return ""
			}
			return cfg.Endpoint
		}},
		{Name: "env AGENTDECK_ENDPOINT", Lookup: func() string { return os.Getenv("AGENTDECK_ENDPOINT") }},
		{Name: "dotenv AGENTDECK_AGENT_URL", Lookup: dotenvLookup("AGENTDECK_AGENT_URL")},
		{Name: "dotenv AGENT_URL", Lookup: dotenvLookup("AGENT_URL")},
		{Name: "build default", Lookup: func() string { return BuildDefault }},
	}
}

// dotenvLookup reads the key from the working directory's .env file.
// A missing or unreadable file is simply an empty source, never an error.
func dotenvLookup(key string) func() string {
	return func() string {
		env, err := godotenv.Read(envFile)
		if err != nil {
			return ""
		}
		return env[key]
	}
}

// ResolveAndPersist resolves the endpoint and writes it back to the durable
// store when it differs from the persisted value, so the next session starts
// from the last resolved endpoint.
func ResolveAndPersist(override string, cfg *config.Config) string {
	url, _ := Resolve(DefaultProviders(override, cfg))
	if cfg != nil && cfg.Endpoint != url {
		cfg.Endpoint = url
		if err := cfg.Save(); err != nil {
			log.Printf("Failed to persist endpoint: %v", err)
		}
	}
	return url
}

// IsValid reports whether the value is usable as an endpoint. Submit and
// probe consult this before any network call.
func IsValid(url string) bool {
	return urlPattern.MatchString(url)
}
