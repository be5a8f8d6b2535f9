package cli

import (
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Conceptual-Machines/harmony-api/internal/api"
	"github.com/Conceptual-Machines/harmony-api/internal/config"
	"github.com/Conceptual-Machines/harmony-api/internal/metrics"
)

const sentryFlushTimeout = 2 * time.Second

func serveCmd(version string, transitions *string) *cobra.Command {
	var port string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Load environment variables
			if err := godotenv.Load(); err != nil {
				log.Println("No .env file found, using environment variables")
			}

			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			if *transitions != "" {
				cfg.TransitionsFile = *transitions
			}

			if cfg.SentryDSN != "" {
				if err := initSentry(cfg, version); err != nil {
					log.Printf("Failed to initialize Sentry: %v", err)
				} else {
					log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, version)
					// Flush on shutdown
					defer sentry.Flush(sentryFlushTimeout)
				}
			} else {
				log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
			}

			service, err := loadService(cfg.TransitionsFile)
			if err != nil {
				sentry.CaptureException(err)
				return err
			}

			cwMetrics, err := metrics.NewClient(cmd.Context(), cfg.Environment, cfg.CloudWatchNamespace)
			if err != nil {
				return err
			}

			if cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			router := api.SetupRouter(cfg, service, cwMetrics, version)

			log.Printf("🚀 Starting server on port %s", cfg.Port)
			if err := router.Run(":" + cfg.Port); err != nil {
				sentry.CaptureException(err)
				return err
			}
			return nil
		},
	}

	c.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")
	return c
}

func initSentry(cfg *config.Config, version string) error {
	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          "harmony-api@" + version,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		EnableLogs:       true,
		Debug:            !cfg.IsProduction(),
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			// Filter out sensitive data
			if event.Request != nil {
				event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
			}
			return event
		},
	})
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
