package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/techagentng/civiceye/config"
	"github.com/techagentng/civiceye/db"
	"github.com/techagentng/civiceye/logger"
	"github.com/techagentng/civiceye/mailingservices"
	"github.com/techagentng/civiceye/server"
	"github.com/techagentng/civiceye/services"
	"github.com/techagentng/civiceye/services/events"
	"github.com/techagentng/civiceye/services/ocr"
	"github.com/techagentng/civiceye/services/session"
	"github.com/techagentng/civiceye/services/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var seedDemoOnServe bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&seedDemoOnServe, "demo", false, "create the demo citizen and official accounts on startup")
}

// backends are the external clients the services depend on.
type backends struct {
	sessions session.Store
	store    storage.Store
	pusher   services.PushSender
}

func runServe(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.GetDB(conf)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer gormDB.Close()

	if err := db.SeedCatalog(gormDB.DB); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if seedDemoOnServe {
		if err := db.SeedDemoUsers(gormDB.DB); err != nil {
			return fmt.Errorf("seed demo users: %w", err)
		}
	}

	b, err := connectBackends(ctx, conf)
	if err != nil {
		return err
	}

	var mailer mailingservices.Mailer
	if mg := mailingservices.Init(conf); mg != nil {
		mailer = mg
	} else {
		logger.Log.Info("mailgun not configured, review emails disabled")
	}

	hub := events.NewHub()
	recognizer := ocr.NewSpaceClient(ocr.Options{
		Endpoint:          conf.OCREndpoint,
		APIKey:            conf.OCRApiKey,
		Language:          conf.OCRLanguage,
		Timeout:           conf.OCRTimeout,
		RequestsPerMinute: conf.OCRRequestsPerMinute,
		Preprocess:        true,
	})

	authRepo := db.NewAuthRepo(gormDB)
	reportRepo := db.NewReportRepo(gormDB)
	violationTypeRepo := db.NewViolationTypeRepo(gormDB)
	rewardRepo := db.NewRewardRepo(gormDB)
	notificationRepo := db.NewNotificationRepo(gormDB)

	notificationService := services.NewNotificationService(notificationRepo, mailer, b.pusher)
	authService := services.NewAuthService(authRepo, b.sessions, conf)
	reportService := services.NewReportService(reportRepo, violationTypeRepo, authRepo, b.store, hub, notificationService, conf)
	rewardService := services.NewRewardService(rewardRepo, conf)
	plateService := services.NewPlateService(recognizer)

	s := &server.Server{
		Config:              conf,
		AuthRepository:      authRepo,
		AuthService:         authService,
		ReportService:       reportService,
		RewardService:       rewardService,
		PlateService:        plateService,
		NotificationService: notificationService,
		Sessions:            b.sessions,
		Hub:                 hub,
	}
	return s.Start(ctx)
}

// connectBackends sets up the session store, evidence storage and push client concurrently.
func connectBackends(ctx context.Context, conf *config.Config) (*backends, error) {
	b := &backends{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if conf.RedisAddr == "" {
			logger.Log.Info("redis not configured, using in-memory sessions")
			b.sessions = session.NewMemoryStore(conf.SessionSlot)
			return nil
		}
		client := session.NewRedisClient(conf.RedisAddr, conf.RedisPassword, conf.RedisDB)
		if err := client.Ping(gctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		b.sessions = session.NewRedisStore(client, conf.SessionSlot)
		return nil
	})

	g.Go(func() error {
		if conf.StorageDriver == "s3" {
			store, err := storage.NewS3Store(gctx, conf.AWSRegion, conf.AWSBucket, conf.AWSAccessKeyID, conf.AWSSecretAccessKey)
			if err != nil {
				return fmt.Errorf("init s3 storage: %w", err)
			}
			b.store = store
			return nil
		}
		store, err := storage.NewDiskStore(conf.MediaDir, conf.MediaBaseURL)
		if err != nil {
			return fmt.Errorf("init disk storage: %w", err)
		}
		b.store = store
		return nil
	})

	g.Go(func() error {
		if conf.FirebaseCredentialsFile == "" {
			logger.Log.Info("firebase not configured, push notifications disabled")
			return nil
		}
		pusher, err := services.NewFirebasePusher(gctx, conf.FirebaseCredentialsFile)
		if err != nil {
			// push is best effort; the API still works without it
			logger.Log.Warn("firebase init failed, push notifications disabled", zap.Error(err))
			return nil
		}
		b.pusher = pusher
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b, nil
}
