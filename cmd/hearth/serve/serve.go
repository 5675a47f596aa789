// Package servecmder provides the serve command for running the hearth
// API and MCP servers over a shared memory service.
package servecmder

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hearthhq/hearth/api"
	"github.com/hearthhq/hearth/api/mcp"
	"github.com/hearthhq/hearth/pkg/config"
	"github.com/hearthhq/hearth/pkg/eventstream"
	eventstreamkafka "github.com/hearthhq/hearth/pkg/eventstream/kafka"
	eventstreamnop "github.com/hearthhq/hearth/pkg/eventstream/nop"
	"github.com/hearthhq/hearth/pkg/logger"
	"github.com/hearthhq/hearth/pkg/memory"
	"github.com/hearthhq/hearth/pkg/storage"
	"github.com/hearthhq/hearth/pkg/storage/file"
	"github.com/hearthhq/hearth/pkg/storage/provider"
)

type ServeCommander struct {
	apiListen string
	mcpListen string
	noMCP     bool
	debug     bool
	logger    *zap.Logger
}

const serveLongDesc string = `Run the hearth servers.

Starts the HTTP API and the MCP server together over one shared memory
service. The MCP server exposes the next_question, answer_question,
recall_answers, and onboarding_progress tools for assistant integration.

When the file storage provider is active, the memory file is watched for
external edits and reloaded snapshots are published to the event stream.

Examples:
  hearth serve
  hearth serve --api-listen :8090 --mcp-listen :8091
  hearth serve --no-mcp`

const serveShortDesc string = "Run the hearth API and MCP servers"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfger, err := config.NewConfiger(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cfg, err := cfger.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if !cmd.Flags().Changed("api-listen") {
				cmder.apiListen = cfg.API.Listen
			}
			if !cmd.Flags().Changed("mcp-listen") {
				cmder.mcpListen = cfg.MCP.Listen
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			return cmder.run(cmd.Context(), configDir)
		},
	}

	defaults := config.NewDefaultConfig()
	cmd.Flags().StringVarP(&cmder.apiListen, "api-listen", "a", defaults.API.Listen, "Address for the API server to listen on")
	cmd.Flags().StringVarP(&cmder.mcpListen, "mcp-listen", "m", defaults.MCP.Listen, "Address for the MCP server to listen on")
	cmd.Flags().BoolVar(&cmder.noMCP, "no-mcp", false, "Disable the MCP server")

	return cmd
}

func (c *ServeCommander) run(ctx context.Context, configDir string) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg, err := cfger.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := provider.FromConfig(ctx, cfg, configDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	publisher, err := c.newPublisher(cfg)
	if err != nil {
		_ = store.Close()
		return err
	}

	svc, err := memory.NewService(ctx, store, memory.WithPublisher(publisher))
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("opening memory store: %w", err)
	}
	defer func() { _ = svc.Close() }()

	// Channel to capture errors from goroutines
	errChan := make(chan error, 3)

	// Start API server
	apiConfig := api.Config{
		ListenAddr: c.apiListen,
	}
	apiServer := api.NewServer(apiConfig, svc, c.logger)

	c.logger.Info("starting api server",
		zap.String("api_addr", c.apiListen),
	)

	go func() {
		if err := apiServer.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
	defer func() { _ = apiServer.Shutdown() }()

	// Start MCP server
	var mcpHTTP *http.Server
	if !c.noMCP {
		mcpServer, err := mcp.NewServer(mcp.Config{
			Service: svc,
			Logger:  c.logger,
		})
		if err != nil {
			return fmt.Errorf("creating MCP server: %w", err)
		}

		c.logger.Info("starting mcp server",
			zap.String("mcp_addr", c.mcpListen),
		)

		mcpHTTP = &http.Server{
			Addr:    c.mcpListen,
			Handler: mcpServer.Handler(),
		}
		go func() {
			if err := mcpHTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- fmt.Errorf("MCP server error: %w", err)
			}
		}()
		defer func() { _ = mcpHTTP.Close() }()
	}

	// Watch the memory file for external edits
	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	c.watchStore(watchCtx, store, svc, errChan)

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return nil
	}
}

// watchStore starts the fsnotify watcher when the substrate is file-backed.
// Non-file substrates have nothing to watch; this is a no-op for them.
func (c *ServeCommander) watchStore(ctx context.Context, store storage.Driver, svc *memory.Service, errChan chan<- error) {
	fileDriver, ok := store.(*file.Driver)
	if !ok {
		return
	}

	watcher, err := newStoreWatcher(fileDriver.Path(), svc, c.logger)
	if err != nil {
		c.logger.Warn("file watch unavailable", zap.Error(err))
		return
	}

	go func() {
		if err := watcher.run(ctx); err != nil {
			errChan <- fmt.Errorf("file watcher error: %w", err)
		}
	}()
}

// newPublisher builds the event stream publisher selected by config.
func (c *ServeCommander) newPublisher(cfg *config.Config) (eventstream.Publisher, error) {
	switch cfg.Events.Publisher {
	case "", "none":
		return eventstreamnop.NewPublisher(), nil

	case "kafka":
		if len(cfg.Events.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("events.kafka_brokers is required for the kafka publisher")
		}
		c.logger.Info("publishing snapshot events to kafka",
			zap.Strings("brokers", cfg.Events.KafkaBrokers),
			zap.String("topic", cfg.Events.KafkaTopic),
		)
		return eventstreamkafka.NewPublisher(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic)

	default:
		return nil, fmt.Errorf("unknown events publisher: %q", cfg.Events.Publisher)
	}
}
