package cmd

import (
	"context"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jvmdbg/jdwp-proxy/internal/config"
	"github.com/jvmdbg/jdwp-proxy/internal/domain/session"
	"github.com/jvmdbg/jdwp-proxy/internal/metrics"
	"github.com/jvmdbg/jdwp-proxy/internal/task"
	"github.com/jvmdbg/jdwp-proxy/internal/telemetry"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the JDWP proxy",
	Long: `Start the jdwp-proxy server.

The proxy dials a single JVM, binds a client-facing listener, and
multiplexes any number of debugger clients onto that one upstream
connection.

Examples:
  # Start with config file settings
  jdwp-proxy start

  # Start with a specific config file
  jdwp-proxy --config /path/to/jdwp-proxy.yaml start`,
	RunE: runStart,
}

var devMode bool

func init() {
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable development mode (debug logging)")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigRaw()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if devMode {
		cfg.DevMode = true
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), gracefulSignals()...)
	go func() {
		<-ctx.Done()
		stop() // Restore default: a second signal is an immediate exit.
	}()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	if configFile := config.ConfigFileUsed(); configFile != "" {
		logger.Info("loaded config", "file", configFile)
	}

	pidPath := pidFilePath()
	if err := writePIDFile(pidPath); err != nil {
		logger.Warn("failed to write PID file", "path", pidPath, "error", err)
	} else {
		defer os.Remove(pidPath)
	}

	tracer, shutdownTracer, err := telemetry.Setup(os.Stderr, cfg.Telemetry.Enabled)
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	if cfg.Metrics.Enabled {
		metricsServer := &stdhttp.Server{Addr: cfg.Metrics.Addr, Handler: metrics.Handler(registry)}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
		logger.Info("metrics listening", "addr", cfg.Metrics.Addr)
	}

	sup := &task.Supervisor{
		Config:   cfg,
		Metrics:  m,
		Tracer:   tracer,
		Logger:   logger,
		Registry: session.NewRegistry(),
	}

	logger.Info("jdwp-proxy starting",
		"version", Version,
		"dev_mode", cfg.DevMode,
		"listen", cfg.Listen.Addr,
		"upstream", cfg.Upstream.Addr,
	)

	if err := sup.Run(ctx); err != nil {
		return err
	}

	logger.Info("jdwp-proxy stopped")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// pidFilePath returns the standard location for the proxy's PID file.
func pidFilePath() string {
	if pidFileFlag != "" {
		return pidFileFlag
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".jdwp-proxy", "server.pid")
	}
	return filepath.Join(os.TempDir(), "jdwp-proxy-server.pid")
}

func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644)
}

func readPIDFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}
