package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"estate-cms/config"
	"estate-cms/database"
	"estate-cms/internal/api/shared"
	routes "estate-cms/internal/app/http"
	"estate-cms/internal/app/http/middleware"
	"estate-cms/internal/domain/content"
	"estate-cms/internal/domain/media"
	"estate-cms/internal/domain/projects"
	"estate-cms/internal/infra/logging"
	"estate-cms/internal/infra/s3"
	"estate-cms/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadEnv()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logging.New("estate-cms", cfg.LogLevel)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	backend, err := newBackend(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("image storage")
	}
	hosts := cfg.ImageHosts()
	if len(hosts) == 0 {
		log.Warn("PUBLIC_BASE_URL and UPLOAD_HOSTS unset: image deletes accept any host")
	}
	images := media.NewStore(backend, log, media.WithHosts(hosts...))

	repos, err := newRepositories(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database")
	}

	env := shared.Env{
		Images: images,
		Log:    log,
		Limits: shared.Limits{
			MaxFileSize:  cfg.MaxFileSize,
			MaxFiles:     cfg.MaxFiles,
			MaxBodyBytes: cfg.MaxBodyBytes,
		},
		PublicBaseURL: cfg.PublicBaseURL,
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.Metrics())

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	if cfg.Debug {
		pprof.Register(r)
	}

	routes.RegisterRoutes(r, routes.Deps{Env: env, Store: images, Repos: repos})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    server.Addr,
			"db":      cfg.DBDriver,
			"storage": cfg.StorageDriver,
		}).Info("estate-cms listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}

func newBackend(ctx context.Context, cfg *config.Config) (media.Backend, error) {
	if strings.EqualFold(cfg.StorageDriver, "s3") {
		client, err := s3.NewClient(ctx, s3.Options{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			UseSSL:    cfg.S3.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return media.NewS3Backend(client, cfg.S3.Bucket), nil
	}
	return media.NewLocalBackend(cfg.UploadsDir)
}

func newRepositories(cfg *config.Config, log *logrus.Logger) (routes.Repositories, error) {
	if strings.EqualFold(cfg.DBDriver, "memory") {
		log.Warn("DB_DRIVER=memory: data is lost on restart")
		return routes.Repositories{
			Projects:            store.NewMemory[projects.Project](),
			Reviews:             store.NewMemory[content.Review](),
			Amenities:           store.NewMemory[content.Amenity](),
			HomeHeroes:          store.NewMemory[content.HomeHero](),
			HomeAbouts:          store.NewMemory[content.HomeAbout](),
			PaymentLists:        store.NewMemory[content.PaymentList](),
			AssociateDevelopers: store.NewMemory[content.AssociateDeveloper](),
			Careers:             store.NewMemory[content.Career](),
		}, nil
	}

	db, err := database.InitDB(cfg.DBURL, log)
	if err != nil {
		return routes.Repositories{}, err
	}
	return gormRepositories(db), nil
}

func gormRepositories(db *gorm.DB) routes.Repositories {
	return routes.Repositories{
		Projects:            store.NewGorm[projects.Project](db),
		Reviews:             store.NewGorm[content.Review](db),
		Amenities:           store.NewGorm[content.Amenity](db),
		HomeHeroes:          store.NewGorm[content.HomeHero](db),
		HomeAbouts:          store.NewGorm[content.HomeAbout](db),
		PaymentLists:        store.NewGorm[content.PaymentList](db),
		AssociateDevelopers: store.NewGorm[content.AssociateDeveloper](db),
		Careers:             store.NewGorm[content.Career](db),
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			// wildcard origin cannot be combined with credentials
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
