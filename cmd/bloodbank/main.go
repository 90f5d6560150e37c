package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YusovID/bloodbank-service/internal/config"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/events"
	"github.com/YusovID/bloodbank-service/internal/repository/postgres"
	"github.com/YusovID/bloodbank-service/internal/scheduler"
	"github.com/YusovID/bloodbank-service/internal/service"
	myhttp "github.com/YusovID/bloodbank-service/internal/transport/http"
	"github.com/YusovID/bloodbank-service/pkg/logger/sl"
	"github.com/YusovID/bloodbank-service/pkg/logger/slogpretty"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting bloodbank-service", slog.String("env", cfg.Env))

	db, err := postgres.NewDB(ctx, cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	var (
		donors        = postgres.NewDonorRepository(db.DB(), log)
		donations     = postgres.NewDonationRepository(db.DB(), log)
		hospitals     = postgres.NewHospitalRepository(db.DB(), log)
		inventory     = postgres.NewInventoryRepository(db.DB(), log)
		requests      = postgres.NewRequestRepository(db.DB(), log)
		broadcasts    = postgres.NewBroadcastRepository(log)
		outbox        = postgres.NewOutboxRepository(log)
		appointments  = postgres.NewAppointmentRepository(db.DB(), log)
		notifications = postgres.NewNotificationRepository(db.DB(), log)
	)

	base := service.NewBaseService(db.DB(), log, outbox)
	policy := service.Policy{
		InventoryMode: domain.MatchMode(cfg.Matching.InventoryMode),
		DonorMode:     domain.MatchMode(cfg.Matching.DonorMode),
		NotifyLimit:   uint64(max(cfg.Matching.NotifyLimit, 1)),
	}

	eligibility := service.NewEligibilityService(base, donors, donations, requests, hospitals)
	inventorySvc := service.NewInventoryService(base, inventory, hospitals)
	appointmentSvc := service.NewAppointmentService(base, appointments, donors, hospitals, requests)

	srv := myhttp.NewServer(log, myhttp.Services{
		Eligibility:   eligibility,
		Hospitals:     service.NewHospitalService(base, hospitals),
		Inventory:     inventorySvc,
		Requests:      service.NewRequestService(base, requests, requests, inventory, hospitals),
		Matching:      service.NewMatchingService(base, policy, requests, requests, donors, hospitals),
		Allocation:    service.NewAllocationService(base, policy, requests, inventory, hospitals),
		Broadcasts:    service.NewBroadcastService(base, broadcasts, donors),
		Reports:       service.NewReportService(base, inventory, requests, cfg.Matching.DemandWindowDays),
		Appointments:  appointmentSvc,
		Notifications: service.NewNotificationService(base, notifications),
	})

	publisher, closePublisher, err := newPublisher(ctx, cfg.Events, log)
	if err != nil {
		return fmt.Errorf("failed to init events sink: %w", err)
	}
	defer closePublisher()

	relay := events.NewRelay(
		db.DB(),
		outbox,
		publisher,
		events.NewInboxProjector(notifications, log),
		events.RelayConfig{BatchSize: cfg.Events.RelayBatchSize, MaxAttempts: cfg.Events.MaxAttempts},
		log,
	)

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("service started", slog.String("addr", httpServer.Addr))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error listening and serving: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("stopping server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down http server: %w", err)
		}

		return nil
	})

	if cfg.Scheduler.Enabled {
		sched := scheduler.New(log, cfg.Scheduler.JobTimeout)

		err := sched.Register(cfg.Scheduler, scheduler.Jobs{
			Restoration: func(ctx context.Context, now time.Time) error {
				_, err := eligibility.RestorationSweep(ctx, now)
				return err
			},
			Expiry: func(ctx context.Context, now time.Time) error {
				_, err := inventorySvc.ExpireSweep(ctx, now)
				return err
			},
			Relay: func(ctx context.Context, _ time.Time) error {
				_, err := relay.Drain(ctx)
				return err
			},
			Reminder: func(ctx context.Context, now time.Time) error {
				_, err := appointmentSvc.ReminderSweep(ctx, now)
				return err
			},
		})
		if err != nil {
			return fmt.Errorf("failed to register jobs: %w", err)
		}

		g.Go(func() error {
			return sched.Start(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if n, err := relay.Drain(drainCtx); err != nil {
		log.Warn("outbox drain on shutdown failed", slog.Int("published", n), sl.Err(err))
	}

	return nil
}

// newPublisher builds the outbox sink named by cfg.Sink and a func releasing its client.
func newPublisher(ctx context.Context, cfg config.Events, log *slog.Logger) (events.Publisher, func(), error) {
	switch cfg.Sink {
	case "redis":
		client, err := events.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}

		return events.NewRedisStreamPublisher(client, cfg.Redis.Stream, cfg.Redis.MaxLen), func() {
			if err := client.Close(); err != nil {
				log.Error("redis close failed", sl.Err(err))
			}
		}, nil
	case "kafka":
		client, err := events.NewKafkaClient(cfg.Kafka)
		if err != nil {
			return nil, nil, err
		}

		return events.NewKafkaPublisher(client, cfg.Kafka.Topic), client.Close, nil
	default:
		return events.NewLogPublisher(log), func() {}, nil
	}
}
