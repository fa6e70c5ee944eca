package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aurelia-hotels/service-reservation/internal/application"
	"github.com/aurelia-hotels/service-reservation/internal/config"
	"github.com/aurelia-hotels/service-reservation/internal/database"
	"github.com/aurelia-hotels/service-reservation/internal/domain"
	bookingDomain "github.com/aurelia-hotels/service-reservation/internal/domain/booking"
	"github.com/aurelia-hotels/service-reservation/internal/handler"
	"github.com/aurelia-hotels/service-reservation/internal/health"
	"github.com/aurelia-hotels/service-reservation/internal/kafka"
	"github.com/aurelia-hotels/service-reservation/internal/logger"
	"github.com/aurelia-hotels/service-reservation/internal/middleware"
	"github.com/aurelia-hotels/service-reservation/internal/repository"
	"github.com/aurelia-hotels/service-reservation/internal/vip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const serviceName = "service-reservation"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer log.Sync()

	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	if err := database.RunMigrations(cfg.DB.DatabaseURL(), "migrations", log); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer producer.Close()

	clock := domain.SystemClock{}
	bookings := repository.NewGormBookingRepository(db)
	rooms := repository.NewGormRoomRepository(db)
	clients := repository.NewGormClientRepository(db)
	txManager := repository.NewGormTxManager(db, cfg.LockTimeout)
	pricing := bookingDomain.NewNightlyRatePricing()
	classifier := vip.NewAPIClassifier(cfg.VIP.APIURL, cfg.VIP.APIToken, cfg.VIP.Timeout, log)

	reservationService := application.NewReservationService(txManager, bookings, pricing, clock, producer, log)
	roomService := application.NewRoomService(rooms, clock, log)
	clientService := application.NewClientService(clients, classifier, clock, log)

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	sweeper := application.NewCheckoutSweeper(reservationService, cfg.SweepInterval, log)
	go sweeper.Run(sweeperCtx)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(log),
		middleware.RecoveryMiddleware(log),
		middleware.CORSMiddleware(),
		middleware.SecurityHeadersMiddleware(),
	)

	health.NewHandler(db, serviceName).RegisterRoutes(router)

	api := router.Group("/api/v1")
	handler.NewBookingHandler(reservationService).RegisterRoutes(api)
	handler.NewRoomHandler(roomService, reservationService).RegisterRoutes(api)
	handler.NewClientHandler(clientService, reservationService).RegisterRoutes(api)
	handler.NewAdminHandler(reservationService).RegisterRoutes(api)

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}
