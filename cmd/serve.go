package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/xronetech/leads/badwords"
	"github.com/xronetech/leads/clients"
	"github.com/xronetech/leads/config"
	"github.com/xronetech/leads/config/redis"
	"github.com/xronetech/leads/geolocation"
	"github.com/xronetech/leads/logger"
	"github.com/xronetech/leads/models/session_models"
	"github.com/xronetech/leads/routes"
	"github.com/xronetech/leads/sessions"
	"github.com/xronetech/leads/utils/mail"
	"github.com/xronetech/leads/validation"
)

const (
	shutdownTimeout = 10 * time.Second
	janitorInterval = time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.InitLoggers(logger.Options{LogFile: cfg.LogFile, Debug: cfg.Debug})
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, rdb := sessionStore(ctx, cfg)
	defer redis.CloseRedis()

	if err := badwords.LoadBadWords(cfg.BadWordsFile); err != nil {
		logger.WarnLogger.Warnf("Profanity screen disabled: %v", err)
	} else {
		logger.InfoLogger.Info("Bad words loaded successfully!")
	}
	v := validation.New(
		validation.WithLocation(cfg.Location),
		validation.WithProfanityCheck(badwords.ContainsBadWords),
	)

	opts := []sessions.Option{
		sessions.WithResetDelay(cfg.ResetDelay),
		sessions.WithDispatcher(session_models.KindContact, clients.NewWebhookDispatcher(cfg.ContactWebhook)),
		sessions.WithDispatcher(bookingKind(cfg.Variant), clients.NewWebhookDispatcher(cfg.BookingWebhook)),
	}
	if cfg.Variant == config.VariantSingle {
		opts = append(opts, sessions.WithLocationNotifier(geolocation.NewNotifier(cfg.LocationWebhook.URL, cfg.LocationWebhook.APIKey)))
	}

	mailer, err := mail.NewMailer(cfg.SMTP)
	if err != nil {
		return err
	}
	if mailer != nil {
		opts = append(opts, sessions.WithSubmitHook(mailer.NotifyAsync))
		logger.InfoLogger.Infof("Submission alerts will be mailed to %s", cfg.SMTP.To)
	}

	manager := sessions.NewManager(store, v, opts...)

	router := routes.NewRouter(routes.Options{
		Config:   cfg,
		Sessions: manager,
		Area:     geolocation.NewServiceArea(geolocation.DefaultBases),
		Redis:    rdb,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.InfoLogger.Infof("Server listening on :%s (variant %s)", cfg.Port, cfg.Variant)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	logger.InfoLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
	}

	manager.Close()
	mailer.Wait()
	logger.InfoLogger.Info("Server exited gracefully.")
	return nil
}

// sessionStore uses Redis when REDIS_URL is set and reachable and falls
// back to process memory otherwise.
func sessionStore(ctx context.Context, cfg config.Config) (sessions.Store, *goredis.Client) {
	rdb, err := redis.GetRedisClient(ctx, cfg.RedisURL)
	if err == nil {
		logger.InfoLogger.Info("Form sessions are stored in Redis")
		return sessions.NewRedisStore(rdb, cfg.SessionTTL), rdb
	}
	if !errors.Is(err, redis.ErrNotConfigured) {
		logger.ErrorLogger.Errorf("Redis unavailable, keeping form sessions in memory: %v", err)
	}

	store := sessions.NewMemoryStore(cfg.SessionTTL)
	store.StartJanitor(ctx, janitorInterval)
	return store, nil
}

func bookingKind(variant config.BookingVariant) session_models.FormKind {
	if variant == config.VariantWizard {
		return session_models.KindWizard
	}
	return session_models.KindBooking
}
