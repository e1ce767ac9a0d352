package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	SiteURL         string           `yaml:"site_url"`
	StateFile       string           `yaml:"state_file"`
	TrafficEndpoint string           `yaml:"traffic_endpoint"`
	MaxPosts        int              `yaml:"max_posts"`
	NoClaude        bool             `yaml:"no_claude"`
	Summarizer      SummarizerConfig `yaml:"summarizer"`
	Publisher       PublisherConfig  `yaml:"publisher"`
}

type SummarizerConfig struct {
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	MaxTokens int    `yaml:"max_tokens"`
}

type PublisherConfig struct {
	Type    string        `yaml:"type"`
	Discord DiscordConfig `yaml:"discord"`
	Email   EmailConfig   `yaml:"email"`
}

type DiscordConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

type EmailConfig struct {
	SMTPHost string   `yaml:"smtp_host"`
	SMTPPort int      `yaml:"smtp_port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// Load reads a YAML config file and expands environment variables. Defaults
// and validation are applied separately so CLI flags can override file
// values in between.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// SetDefaults fills unset fields. The Anthropic API key falls back to the
// ANTHROPIC_API_KEY environment variable.
func SetDefaults(cfg *Config) {
	if cfg.MaxPosts == 0 {
		cfg.MaxPosts = 20
	}
	if cfg.Summarizer.Model == "" {
		cfg.Summarizer.Model = "claude-3-5-sonnet-latest"
	}
	if cfg.Summarizer.MaxTokens == 0 {
		cfg.Summarizer.MaxTokens = 600
	}
	if cfg.Summarizer.APIKey == "" {
		cfg.Summarizer.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if cfg.Publisher.Type == "" {
		cfg.Publisher.Type = "stdout"
	}
	if cfg.Publisher.Email.SMTPPort == 0 {
		cfg.Publisher.Email.SMTPPort = 587
	}
}

// Validate checks the fully merged configuration.
func Validate(cfg *Config) error {
	if cfg.SiteURL == "" {
		return fmt.Errorf("config: site_url is required")
	}
	u, err := url.Parse(cfg.SiteURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: site_url %q is not a valid http(s) URL", cfg.SiteURL)
	}
	if cfg.StateFile == "" {
		return fmt.Errorf("config: state_file is required")
	}
	if cfg.MaxPosts < 1 {
		return fmt.Errorf("config: max_posts must be positive, got %d", cfg.MaxPosts)
	}
	if !cfg.NoClaude && cfg.Summarizer.APIKey == "" {
		return fmt.Errorf("config: summarizer.api_key is required unless no_claude is set (set ANTHROPIC_API_KEY env var)")
	}
	switch cfg.Publisher.Type {
	case "stdout", "discord", "email":
	default:
		return fmt.Errorf("config: unsupported publisher type %q (supported: stdout, discord, email)", cfg.Publisher.Type)
	}
	if cfg.Publisher.Type == "discord" && cfg.Publisher.Discord.WebhookURL == "" {
		return fmt.Errorf("config: publisher.discord.webhook_url is required for discord publisher")
	}
	if cfg.Publisher.Type == "email" {
		if cfg.Publisher.Email.SMTPHost == "" {
			return fmt.Errorf("config: publisher.email.smtp_host is required for email publisher")
		}
		if cfg.Publisher.Email.From == "" {
			return fmt.Errorf("config: publisher.email.from is required for email publisher")
		}
		if len(cfg.Publisher.Email.To) == 0 {
			return fmt.Errorf("config: publisher.email.to is required for email publisher")
		}
	}
	return nil
}
