package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/cache"
	"github.com/SARVESHVARADKAR123/memberclub/internal/config"
	"github.com/SARVESHVARADKAR123/memberclub/internal/handler"
	"github.com/SARVESHVARADKAR123/memberclub/internal/imagestore"
	"github.com/SARVESHVARADKAR123/memberclub/internal/kafka"
	"github.com/SARVESHVARADKAR123/memberclub/internal/notify"
	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
	"github.com/SARVESHVARADKAR123/memberclub/internal/outbox"
	"github.com/SARVESHVARADKAR123/memberclub/internal/repository"
	"github.com/SARVESHVARADKAR123/memberclub/internal/scheduler"
	"github.com/SARVESHVARADKAR123/memberclub/internal/service"
	"github.com/SARVESHVARADKAR123/memberclub/internal/tx"
)

func main() {
	cfg := config.Load()

	// Observability
	observability.InitLogger(cfg.ServiceName, cfg.LogLevel)
	log := observability.Log

	if cfg.TracingEnabled {
		tp, err := observability.InitTracer(cfg.ServiceName, cfg.JaegerURL)
		if err != nil {
			log.Fatal("failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Error("failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := repository.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close()

	// Redis
	rdb := cache.New(cfg.RedisAddr)
	defer rdb.Close()

	// Observability server (metrics & health)
	obsMux := chi.NewRouter()
	obsMux.Handle("/metrics", promhttp.Handler())
	obsMux.Get("/health/live", observability.HealthLiveHandler)
	obsMux.Get("/health/ready", observability.HealthReadyHandler(db, cache.Pinger{R: rdb}))

	go func() {
		log.Info("HTTP observability server started", zap.String("addr", cfg.ObsHTTPAddr))
		if err := http.ListenAndServe(cfg.ObsHTTPAddr, obsMux); err != nil {
			log.Error("HTTP observability server failed", zap.Error(err))
		}
	}()

	// Image store
	s3Opts := imagestore.S3Options{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		Endpoint:      cfg.S3Endpoint,
		AccessKeyID:   cfg.S3AccessKeyID,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.ImagePublicBaseURL,
		Timeout:       cfg.ImageStoreTimeout,
		MaxAttempts:   cfg.ImageStoreRetries,
	}
	s3Client, err := imagestore.NewS3Client(ctx, s3Opts)
	if err != nil {
		log.Fatal("image store init failed", zap.Error(err))
	}
	images := &service.ImageLifecycle{
		Store:    imagestore.NewS3Store(s3Client, s3Opts),
		Progress: &cache.UploadProgress{R: rdb},
	}

	// Repositories
	profileRepo := &repository.ProfileRepo{DB: db}
	bannerRepo := &repository.BannerRepo{DB: db}
	boardRepo := &repository.WhiteboardRepo{DB: db}
	requestRepo := &repository.MentorRequestRepo{DB: db}
	outboxRepo := outbox.NewRepository(db)
	profileCache := &cache.ProfileCache{R: rdb}

	// Services
	profileSvc := &service.ProfileService{
		Repo:   profileRepo,
		Images: images,
		Cache:  profileCache,
		Outbox: outboxRepo,
	}
	directory := &service.MentorDirectory{Mentors: profileRepo, Profiles: profileRepo, Cache: profileCache}
	adminSvc := &service.AdminService{Profiles: profileRepo, Cache: profileCache}
	bannerSvc := &service.BannerService{Repo: bannerRepo, Images: images}
	boardSvc := &service.WhiteboardService{Repo: boardRepo, Images: images}
	requestSvc := &service.MentorRequestService{
		Requests: requestRepo,
		Mentors:  profileRepo,
		Profiles: profileRepo,
		Outbox:   outboxRepo,
		Tx:       &tx.Manager{DB: db},
	}

	// Kafka producer + outbox publisher
	producer := kafka.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	publisher := outbox.NewPublisher(outboxRepo, producer)
	go publisher.Start(ctx)

	// Kafka consumer: mentor request emails
	mailer, err := notify.NewMailer(notify.SMTPOptions{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		Bcc:      cfg.AdminEmail,
	})
	if err != nil {
		log.Fatal("mailer init failed", zap.Error(err))
	}
	go kafka.StartMentorRequestConsumer(ctx, cfg.KafkaBrokers, cfg.ServiceName+"-notifications", mailer)

	// Jobs
	jobs, err := scheduler.New(cfg.FeaturedSweepCron, boardSvc)
	if err != nil {
		log.Fatal("invalid FEATURED_SWEEP_CRON", zap.Error(err))
	}
	jobs.Start()

	// HTTP server
	errs := handler.Errors{Production: cfg.IsProduction()}
	mux := handler.NewRouter(handler.Handlers{
		Profile:       handler.NewProfileHandler(profileSvc, errs),
		Mentor:        handler.NewMentorHandler(directory, errs),
		Admin:         handler.NewAdminHandler(adminSvc, directory, errs),
		Banner:        handler.NewBannerHandler(bannerSvc, errs),
		Whiteboard:    handler.NewWhiteboardHandler(boardSvc, errs),
		MentorRequest: handler.NewMentorRequestHandler(requestSvc, errs),
		Upload:        handler.NewUploadHandler(&cache.UploadProgress{R: rdb}, errs),
	}, handler.RouterOptions{
		ServiceName:       cfg.ServiceName,
		JWTSecret:         []byte(cfg.JWTSecret),
		JWTIssuer:         cfg.JWTIssuer,
		JWTAudience:       cfg.JWTAudience,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
		RequestTimeout:    cfg.RequestTimeout,
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		Ready:             []observability.Pinger{db, cache.Pinger{R: rdb}},
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("memberclub HTTP started", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("received signal, initiating shutdown")

	ctxShut, shutCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutCancel()

	_ = srv.Shutdown(ctxShut)
	jobs.Stop(ctxShut)
	cancel() // stop outbox publisher + kafka consumer

	// Let in-flight image releases finish.
	done := make(chan struct{})
	go func() {
		images.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctxShut.Done():
		log.Warn("image cleanup still running at shutdown")
	}

	log.Info("memberclub stopped")
}
