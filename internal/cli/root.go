// Package cli provides the command-line interface for wp-monitor.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

var (
	configPath      string
	siteURL         string
	stateFile       string
	trafficEndpoint string
	maxPosts        int
	noClaude        bool
)

var rootCmd = &cobra.Command{
	Use:   "wp-monitor",
	Short: "Monitor a WordPress site for content changes and summarize them with Claude",
	Long: "wp-monitor polls a WordPress site's REST API for new or modified posts, " +
		"tracks state across runs in a local file, optionally enriches the result " +
		"with inventory and traffic metrics, and asks Claude for a summary with " +
		"operational recommendations. One invocation performs one run; drive it " +
		"from cron or a similar scheduler.",
	SilenceUsage: true,
	RunE:         runAction,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("wp-monitor %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to optional YAML config file")
	rootCmd.Flags().StringVar(&siteURL, "site-url", "", "WordPress site base URL (required)")
	rootCmd.Flags().StringVar(&stateFile, "state-file", "", "path to local state JSON file (required)")
	rootCmd.Flags().StringVar(&trafficEndpoint, "traffic-endpoint", "", "optional URL serving daily visit counts")
	rootCmd.Flags().IntVar(&maxPosts, "max-posts", 0, "number of most recently modified posts to fetch")
	rootCmd.Flags().BoolVar(&noClaude, "no-claude", false, "skip the Claude call and only report detected changes")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
