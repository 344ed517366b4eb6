package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/hirehall/jobboard/internal/api"
	"github.com/hirehall/jobboard/internal/clients/mailer"
	"github.com/hirehall/jobboard/internal/config"
	"github.com/hirehall/jobboard/internal/logger"
	"github.com/hirehall/jobboard/internal/metrics"
	"github.com/hirehall/jobboard/internal/repositories"
	"github.com/hirehall/jobboard/internal/services"
	log "github.com/sirupsen/logrus"
)

func newMailSender(cfg config.MailerConfig) *mailer.Client {
	if !cfg.Enabled() {
		log.Info("mailer not configured, email notifications disabled")
		return nil
	}

	client, err := mailer.NewClient(mailer.Config{
		APIURL:      cfg.APIURL,
		APIKey:      cfg.APIKey,
		FromAddress: cfg.FromAddress,
	})
	if err != nil {
		log.Fatalf("can't create mailer client: %v", err)
	}
	if cfg.MaxRequestsPerSecond > 0 {
		client.SetRateLimit(cfg.MaxRequestsPerSecond)
	}
	return client
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsPort)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	jobs := repositories.NewJobsRepository(dbContext.DB)
	searches := repositories.NewSavedSearchRepository(dbContext.DB, cfg.Board.SavedSearchCap)
	applications := repositories.NewApplicationsRepository(dbContext.DB)
	favorites := repositories.NewFavoritesRepository(dbContext.DB)
	notifications := repositories.NewNotificationsRepository(dbContext.DB)
	companies := repositories.NewCompaniesRepository(dbContext.DB)

	bus := EventBus.New()

	filterOptions, err := services.NewFilterOptionsService(bus, jobs, cfg.Board.FilterOptionsCacheTTL)
	if err != nil {
		log.Fatalf("can't create filter options service: %v", err)
	}

	tailored := services.NewTailoredJobs(searches, jobs, cfg.Board.TailoredPerSearch, cfg.Board.TailoredLimit)
	applicationService := services.NewApplicationService(bus, applications, jobs)

	var mailSender services.MailSender
	if client := newMailSender(cfg.Mailer); client != nil {
		mailSender = client
	}
	_, err = services.NewNotifier(bus, searches, notifications, mailSender)
	if err != nil {
		log.Fatalf("can't create notifier: %v", err)
	}

	cleaner, err := services.NewNotificationsCleaner(notifications, cfg.Board.NotificationRetentionDays)
	if err != nil {
		log.Fatalf("can't create notifications cleaner: %v", err)
	}
	defer cleaner.Stop()

	router := api.NewRouter(cfg.Server, api.Handlers{
		Jobs:         api.NewJobsHandler(jobs, filterOptions, bus),
		Searches:     api.NewSearchesHandler(searches),
		Dashboard:    api.NewDashboardHandler(tailored, jobs, favorites, notifications),
		Applications: api.NewApplicationsHandler(applicationService, jobs, applications),
		Companies:    api.NewCompaniesHandler(companies, jobs),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()
	log.Infof("listening on :%d", cfg.Server.Port)

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
	log.Info("Services stopped.")
}
