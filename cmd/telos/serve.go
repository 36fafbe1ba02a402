package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"telos/internal/ai"
	"telos/internal/assistant"
	"telos/internal/auth"
	"telos/internal/handlers"
	"telos/internal/storage"
)

var (
	migrateOnStart bool
	sweepEvery     time.Duration
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply the schema before serving")
	serveCmd.Flags().DurationVar(&sweepEvery, "session-sweep", time.Hour, "interval for deleting expired sessions (0 disables)")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	pool, err := connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info("connected to db successfully")

	if migrateOnStart {
		if err := storage.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	users := storage.NewUserStorage(pool)
	sessions := storage.NewSessionStorage(pool)
	profiles := storage.NewProfileStorage(pool)
	activity := storage.NewActivityStorage(pool)

	authService := auth.NewService(users, sessions, profiles, cfg.SessionTTL, log)

	deps := handlers.Deps{
		Auth:       authService,
		Problems:   storage.NewProblemStorage(pool),
		Goals:      storage.NewGoalStorage(pool),
		Missions:   storage.NewMissionStorage(pool),
		Challenges: storage.NewChallengeStorage(pool),
		Activity:   activity,
		Log:        log,
		CORSOrigin: cfg.CORSOrigin,
	}

	if cfg.GoogleEnabled() {
		deps.Google = auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
		log.Info("google sign-in enabled")
	}

	opts := []assistant.Option{assistant.WithLogger(log)}
	if cfg.GigaChatKey != "" {
		opts = append(opts, assistant.WithGenerator(ai.NewGigaChatClient(cfg.GigaChatKey)))
		log.Info("assistant model fallback enabled")
	}
	chat, err := assistant.New(opts...)
	if err != nil {
		return err
	}
	deps.Assistant = chat

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handlers.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if sweepEvery > 0 {
		g.Go(func() error {
			sweepSessions(ctx, sessions, sweepEvery)
			return nil
		})
	}

	return g.Wait()
}

func sweepSessions(ctx context.Context, sessions *storage.SessionStorage, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			n, err := sessions.DeleteExpired(ctx, t)
			if err != nil {
				log.Warn("session sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Debug("expired sessions removed", zap.Int64("count", n))
			}
		}
	}
}
