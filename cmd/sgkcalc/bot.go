package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/emeklilik/sgkcalc/internal/bot"
	"github.com/emeklilik/sgkcalc/internal/config"
	"github.com/emeklilik/sgkcalc/internal/conversation"
	"github.com/emeklilik/sgkcalc/internal/message"
	"github.com/emeklilik/sgkcalc/internal/metrics"
	"github.com/emeklilik/sgkcalc/internal/scheduler"
	"github.com/emeklilik/sgkcalc/internal/session"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	Long: "Runs the Telegram bot with long polling, a Prometheus /metrics and /healthz\n" +
		"endpoint, and a scheduled purge of abandoned conversations.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, parser := loadConfig(cmd)
		logger := newLogger(cmd, cfg)

		token, err := parser.ResolveToken(cfg)
		if err != nil {
			log.Fatal(err)
		}

		engine := loadEngine(cmd, cfg, parser)
		m := metrics.New()
		engine.SetObserver(m)
		for _, status := range engine.Statuses() {
			engine.Rules(status)
		}

		store, closeStore := openSessionStore(cfg)
		defer closeStore()

		catalog, err := message.NewCatalog()
		if err != nil {
			log.Fatal(err)
		}

		flow := conversation.NewFlow(store, engine, catalog, cfg.MaxContributionDays)
		flow.SetLogger(logger)

		api, err := bot.Connect(token, cfg.Telegram.Debug)
		if err != nil {
			log.Fatal(err)
		}
		logger.Infof("telegram bot authorized as @%s", api.Self.UserName)

		b := bot.New(api, bot.NewTelegramSender(api), flow, cfg.Telegram.PollTimeoutSecs)
		b.SetLogger(logger)
		b.SetObserver(m)

		sched, err := scheduler.NewScheduler("")
		if err != nil {
			log.Fatal(err)
		}
		purge := &scheduler.PurgeJob{
			Store:    store,
			TTL:      time.Duration(cfg.Session.IdleTTLMinutes) * time.Minute,
			Logger:   logger,
			Observer: m,
		}
		if err := sched.Schedule("session-purge", cfg.Session.PurgeSchedule, purge.Run); err != nil {
			log.Fatal(err)
		}

		health := metrics.NewHealth()
		health.RegisterCheck("rules", func() error {
			if len(engine.Statuses()) == 0 {
				return errNoRuleTables
			}
			return nil
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error { return b.Run(ctx) })
		g.Go(func() error { return sched.Run(ctx) })
		if cfg.MetricsAddr != "" {
			g.Go(func() error { return metrics.Serve(ctx, cfg.MetricsAddr, metrics.NewRouter(m, health)) })
			logger.Infof("metrics listening on %s", cfg.MetricsAddr)
		}

		logger.Infof("bot started (sessions: %s, purge: %s)", sessionBackend(cfg), cfg.Session.PurgeSchedule)
		if err := g.Wait(); err != nil {
			log.Fatal(err)
		}
		logger.Infof("bot stopped")
	},
}

var errNoRuleTables = errors.New("rule table has no status tables")

// openSessionStore opens the SQLite store when a db_path is configured and
// an in-memory store otherwise.
func openSessionStore(cfg *config.Config) (session.Store, func()) {
	if cfg.Session.DBPath == "" {
		return session.NewMemoryStore(), func() {}
	}
	store, err := session.NewSQLiteStore(cfg.Session.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	return store, func() { store.Close() }
}

func sessionBackend(cfg *config.Config) string {
	if cfg.Session.DBPath == "" {
		return "memory"
	}
	return "sqlite " + cfg.Session.DBPath
}

func init() {
	botCmd.Flags().String("rules", "", "Path to the converted rule table JSON (default: rules_path from config)")
	botCmd.Flags().Int("reference-year", 0, "Year ages are computed for (default: config or current year)")
}
