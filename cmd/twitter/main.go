package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	twitter "github.com/RavensCloud/twitter-gofun"
)

var (
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "twitter",
	Short:         "Scrape Twitter profiles and timelines through a real browser",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default twitter.yaml or ~/.config/twitter-gofun/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the config and applies the persistent flags plus any
// command-specific overrides.
func loadConfig(overrides ...func(*twitter.Config)) (*twitter.Config, error) {
	all := append([]func(*twitter.Config){func(c *twitter.Config) {
		if logLevel != "" {
			c.Logging.Level = logLevel
		}
	}}, overrides...)
	return twitter.Load(configFile, all...)
}
