package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "github.com/zoraEmon/food-o-nation-sub001/internal/adapter/http"
	appmw "github.com/zoraEmon/food-o-nation-sub001/internal/adapter/middleware"
	mysqlRepo "github.com/zoraEmon/food-o-nation-sub001/internal/adapter/repository/mysql"
	"github.com/zoraEmon/food-o-nation-sub001/internal/config"
	"github.com/zoraEmon/food-o-nation-sub001/internal/infrastructure/cache"
	"github.com/zoraEmon/food-o-nation-sub001/internal/infrastructure/db"
	"github.com/zoraEmon/food-o-nation-sub001/internal/infrastructure/storage"
	"github.com/zoraEmon/food-o-nation-sub001/internal/notify"
	"github.com/zoraEmon/food-o-nation-sub001/internal/payment"
	"github.com/zoraEmon/food-o-nation-sub001/internal/qr"
	"github.com/zoraEmon/food-o-nation-sub001/internal/scheduler"
	"github.com/zoraEmon/food-o-nation-sub001/internal/usecase/checkin"
	"github.com/zoraEmon/food-o-nation-sub001/internal/usecase/donation"
	"github.com/zoraEmon/food-o-nation-sub001/internal/usecase/stall"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	images, err := storage.NewLocalImageStore(cfg.QRImageDir, cfg.QRImageBase)
	if err != nil {
		log.Fatalf("image store: %v", err)
	}
	qrSvc := qr.NewService(images)

	gateway := payment.NewGateway(
		payment.NewPayPalVerifier(payment.PayPalConfig{
			ClientID: cfg.PayPalClientID,
			Secret:   cfg.PayPalSecret,
			BaseURL:  cfg.PayPalBaseURL,
		}),
		payment.NewCardVerifier(payment.CardConfig{
			SecretKey: cfg.StripeSecretKey,
			BaseURL:   cfg.StripeBaseURL,
		}),
		payment.NewReferenceVerifier(),
	)

	u := mysqlRepo.NewGormUoW(gdb)
	mailer := notify.LogMailer{}
	donors := notify.LogDonorLedger{}
	activity := notify.LogActivityLog{}

	stallUC := stall.NewUsecase(u, qrSvc, mailer, activity)
	checkinUC := checkin.NewUsecase(u, donors, mailer, activity)
	donationUC := donation.NewUsecase(u, gateway, qrSvc, donors, mailer, activity)

	sweeper, err := scheduler.NewSweeper(cfg.SweepSchedule, func(ctx context.Context, now time.Time) error {
		report, err := stallUC.SweepExpired(ctx, now)
		if err != nil {
			return err
		}
		if report.CancelledReservations > 0 {
			log.Printf("expiry sweep: cancelled %d reservations across %d programs",
				report.CancelledReservations, report.ProgramsTouched)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("sweeper: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	h := httpadp.NewHandler()
	rh := httpadp.NewReservationHandler(stallUC)
	sh := httpadp.NewScanHandler(checkinUC)
	dh := httpadp.NewDonationHandler(donationUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)

	e.POST("/programs/:program_id/reservations", rh.Reserve)
	e.DELETE("/reservations/:reservation_id", rh.Cancel)
	e.PUT("/programs/:program_id/capacity", rh.SetCapacity)
	e.POST("/sweeps", rh.Sweep)

	e.POST("/scans/application", sh.ScanApplication)
	e.POST("/scans/reference", sh.ScanReference)
	e.GET("/applications/stats", sh.Stats)

	e.POST("/donations", dh.Create)
	e.POST("/donations/:donation_id/payment", dh.VerifyPayment)
	e.GET("/donations/:donation_id", dh.Get)
	e.PATCH("/items/:item_id/status", dh.UpdateItemStatus)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
