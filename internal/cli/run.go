package cli

import (
	"github.com/ryosukesatoh/wp-monitor/internal/config"
	"github.com/ryosukesatoh/wp-monitor/internal/fetcher"
	"github.com/ryosukesatoh/wp-monitor/internal/metrics"
	"github.com/ryosukesatoh/wp-monitor/internal/publisher"
	"github.com/ryosukesatoh/wp-monitor/internal/runner"
	"github.com/ryosukesatoh/wp-monitor/internal/summarizer"
	"github.com/spf13/cobra"
)

func runAction(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	r := runner.New(
		cfg.SiteURL,
		cfg.StateFile,
		fetcher.NewWordPressFetcher(cfg.SiteURL, cfg.MaxPosts),
		metrics.NewWordPressInventory(cfg.SiteURL),
		buildTrafficCollector(cfg),
		buildSummarizer(cfg),
		buildPublishers(cfg),
	)

	if _, err := r.Run(cmd.Context()); err != nil {
		return err
	}
	return nil
}

// loadConfig merges the optional config file with CLI flags; flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("site-url") {
		cfg.SiteURL = siteURL
	}
	if cmd.Flags().Changed("state-file") {
		cfg.StateFile = stateFile
	}
	if cmd.Flags().Changed("traffic-endpoint") {
		cfg.TrafficEndpoint = trafficEndpoint
	}
	if cmd.Flags().Changed("max-posts") {
		cfg.MaxPosts = maxPosts
	}
	if cmd.Flags().Changed("no-claude") {
		cfg.NoClaude = noClaude
	}

	config.SetDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildTrafficCollector(cfg *config.Config) metrics.TrafficCollector {
	if cfg.TrafficEndpoint == "" {
		return nil
	}
	return metrics.NewHTTPTrafficCollector(cfg.TrafficEndpoint)
}

func buildSummarizer(cfg *config.Config) summarizer.Summarizer {
	if cfg.NoClaude {
		return nil
	}
	return summarizer.NewAnthropicSummarizer(
		cfg.Summarizer.APIKey,
		cfg.Summarizer.Model,
		cfg.Summarizer.MaxTokens,
	)
}

func buildPublishers(cfg *config.Config) []publisher.Publisher {
	switch cfg.Publisher.Type {
	case "discord":
		return []publisher.Publisher{publisher.NewDiscordPublisher(cfg.Publisher.Discord.WebhookURL)}
	case "email":
		e := cfg.Publisher.Email
		return []publisher.Publisher{publisher.NewEmailPublisher(
			e.SMTPHost, e.SMTPPort, e.Username, e.Password, e.From, e.To,
		)}
	default:
		return []publisher.Publisher{publisher.NewStdoutPublisher()}
	}
}
