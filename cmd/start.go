package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"appcheck-stub/core/authority"
	"appcheck-stub/core/config"
	"appcheck-stub/core/loader"
	"appcheck-stub/core/logger"
	"appcheck-stub/core/metrics"
	"appcheck-stub/core/middleware/rayid"

	"appcheck-stub/feature/health"
	"appcheck-stub/feature/token"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the token stub server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Resolve and validate everything before any socket opens.
		// Malformed startup input must abort the process here.
		if err := cfg.Server.Validate(); err != nil {
			logg.Fatal("Invalid server configuration", zap.Error(err))
		}
		if !cfg.Authority.IsValidMode() {
			logg.Fatal("Invalid authority mode", zap.String("mode", cfg.Authority.Mode))
		}
		overrides, err := cfg.Token.Resolve()
		if err != nil {
			logg.Fatal("Invalid override configuration", zap.Error(err))
		}

		// 4. Build the Credential Authority client
		client, err := authority.NewClient(cfg.Authority)
		if err != nil {
			logg.Fatal("Failed to create authority client", zap.Error(err))
		}
		if overrides.Response != nil {
			logg.Warn("Forced response override is active; all requests will short-circuit",
				zap.Int("status", overrides.Response.Code),
				zap.String("reason", overrides.Response.Reason))
		}

		// 5. Initialize Fiber App. BodyLimit is the documented bound on
		// buffered request bodies.
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             cfg.Server.BodyLimitBytes,
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Debug("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Metrics
		m := metrics.New()
		app.Use(m.Middleware())
		app.Get("/metrics", m.Handler())

		// 6. Register Features. Order matters: the token feature's
		// catch-all route must load last.
		mgr := loader.NewManager()
		mgr.Register(health.NewFeature(logg))
		mgr.Register(token.NewFeature(overrides, cfg.Authority.ProjectID, client, m, logg))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("addr", cfg.Server.Addr()),
				zap.String("authority", cfg.Authority.Mode),
				zap.String("project_id", cfg.Authority.ProjectID))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
