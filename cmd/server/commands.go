package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jira_mcp/internal/config"
	"jira_mcp/internal/handler"
	"jira_mcp/internal/logger"
	"jira_mcp/internal/service/jira"
	mcpclient "jira_mcp/internal/service/mcp-client"
	mcpserver "jira_mcp/internal/service/mcp-server"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type cli struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.NewViper()}

	root := &cobra.Command{
		Use:          "jira-mcp",
		Short:        "Read-only Jira Cloud tools over the Model Context Protocol",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("jira-url", "", "Jira site URL, e.g. your-team.atlassian.net (env JIRA_URL)")
	flags.String("jira-email", "", "Jira account email (env JIRA_EMAIL)")
	flags.String("jira-api-token", "", "Jira API token (env JIRA_API_TOKEN)")
	flags.String("log-level", "info", "log level: debug, info, warn, error (env LOG_LEVEL)")
	flags.String("transport", config.TransportStdio, "MCP transport for serve: stdio or http (env TRANSPORT)")
	flags.String("addr", ":8080", "listen address for the http transport (env ADDR)")

	// with no subcommand the binary behaves like "serve"
	root.RunE = c.runServe
	root.AddCommand(c.serveCmd(), c.toolsCmd(), c.callCmd())
	return root
}

// load merges flags, env and the optional config file into a Config and
// initializes the logger.
func (c *cli) load(flags *pflag.FlagSet) (*config.Config, error) {
	if err := c.v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
		if err := c.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := config.Load(c.v)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// newServer validates the configuration before anything can reach Jira
func (c *cli) newServer(flags *pflag.FlagSet) (*config.Config, *server.MCPServer, error) {
	cfg, err := c.load(flags)
	if err != nil {
		return nil, nil, err
	}
	jiraClient, err := jira.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, mcpserver.NewServer(jiraClient), nil
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the Jira tools over stdio (default) or streamable HTTP",
		Args:  cobra.NoArgs,
		RunE:  c.runServe,
	}
}

func (c *cli) runServe(cmd *cobra.Command, _ []string) error {
	cfg, s, err := c.newServer(cmd.Flags())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	log := logger.GetLogger()
	if cfg.Transport == config.TransportHTTP {
		log.Info("Starting Jira MCP server", zap.String("transport", cfg.Transport), zap.String("addr", cfg.Addr), zap.String("jira_url", cfg.JiraURL))
		return serveHTTP(cmd.Context(), cfg.Addr, handler.NewRouter(mcpserver.NewHTTPHandler(s)))
	}

	log.Info("Starting Jira MCP server", zap.String("transport", cfg.Transport), zap.String("jira_url", cfg.JiraURL))
	return mcpserver.Serve(s)
}

func (c *cli) toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools this server exposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// listing needs no Jira credentials; no handler runs
			s := mcpserver.NewServer(nil)

			client, err := mcpclient.NewInProcessClient(cmd.Context(), s)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			tools, err := client.ListTools(cmd.Context())
			if err != nil {
				return err
			}
			for _, tool := range tools {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", tool.Name, tool.Description)
			}
			return nil
		},
	}
}

func (c *cli) callCmd() *cobra.Command {
	var rawArgs string
	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke one tool and print the Jira response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs := map[string]any{}
			if rawArgs != "" {
				if err := json.Unmarshal([]byte(rawArgs), &toolArgs); err != nil {
					return fmt.Errorf("--args must be a JSON object: %w", err)
				}
			}

			_, s, err := c.newServer(cmd.Flags())
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			client, err := mcpclient.NewInProcessClient(cmd.Context(), s)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			result, err := client.CallTool(cmd.Context(), args[0], toolArgs)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mcpserver.ToolResultText(result))
			if result.IsError {
				return fmt.Errorf("tool %s returned an error", args[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rawArgs, "args", "", `tool arguments as a JSON object, e.g. '{"issue_key":"PROJ-123"}'`)
	return cmd
}

// serveHTTP runs h on addr until ctx is cancelled or SIGINT/SIGTERM arrives
func serveHTTP(ctx context.Context, addr string, h http.Handler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.GetLogger().Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
