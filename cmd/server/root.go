package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kinbase/kinship-mcp/internal/mcp"
)

var (
	cfgFile      string
	flagMode     string
	flagPort     string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "kinship-mcp",
	Short: "Kinship reasoning engine, served over MCP",
	Long: `kinship-mcp serves an interactive family-relationship knowledge base
over the Model Context Protocol, either on stdio or as an HTTP JSON-RPC
endpoint.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional)")
	rootCmd.Flags().StringVar(&flagMode, "mode", "", "server mode: stdio or http (default: stdio)")
	rootCmd.Flags().StringVar(&flagPort, "port", "", "HTTP server port when mode=http (default: 8080)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level: trace, debug, info, warn, error (default: info)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runServe(cmd *cobra.Command, args []string) error {
	v := viper.New()
	cfg, err := loadConfig(v, cfgFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Flags explicitly set on the command line win over everything else
	// viper already layered in (env, file, defaults).
	if cmd.Flags().Changed("mode") {
		cfg.Mode = flagMode
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = flagPort
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "kinship-mcp",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})

	server, err := mcp.NewServer(logger)
	if err != nil {
		return fmt.Errorf("initializing MCP server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down gracefully")
		cancel()
	}()

	switch cfg.Mode {
	case "stdio":
		logger.Info("starting MCP server", "transport", "stdio")
		if err := server.ServeSTDIO(ctx); err != nil {
			return fmt.Errorf("stdio transport: %w", err)
		}
	case "http":
		logger.Info("starting MCP server", "transport", "http", "port", cfg.Port)
		if err := server.ServeHTTP(ctx, cfg.Port); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http transport: %w", err)
		}
	default:
		return fmt.Errorf("invalid mode %q: must be 'stdio' or 'http'", cfg.Mode)
	}

	logger.Info("server stopped")
	return nil
}
