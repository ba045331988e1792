package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crossgate/schemesim"
	"github.com/crossgate/schemesim/internal/api"
	"github.com/crossgate/schemesim/internal/config"
	"github.com/crossgate/schemesim/internal/engine"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}

	schedule, err := feeScheduleFromConfig(cfg)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"invalid fee schedule\" err=%v", err)
	}

	options := []schemesim.ClientOption{
		schemesim.WithQuoteTTL(time.Duration(cfg.QuoteTTLSeconds) * time.Second),
		schemesim.WithFeeSchedule(schedule),
		schemesim.WithLogging(cfg.EnableLogging),
	}
	if cfg.RedisAddr != "" {
		options = append(options, schemesim.WithRedisStore(cfg.RedisAddr))
	}

	client, err := schemesim.NewClient(options...)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"simulator init failed\" err=%v", err)
	}
	defer client.Close()

	handler := api.Routes(api.NewHandlers(client), time.Duration(cfg.RequestTimeout)*time.Second)
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: handler,
	}

	go func() {
		log.Printf("level=info component=bootstrap msg=\"schemesim listening\" port=%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("level=fatal component=bootstrap msg=\"server failed\" err=%v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("level=info component=bootstrap msg=\"shutting down\"")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("level=warn component=bootstrap msg=\"shutdown incomplete\" err=%v", err)
	}
}

func feeScheduleFromConfig(cfg config.Config) (engine.FeeSchedule, error) {
	sourceFlat, err := decimal.NewFromString(cfg.SourceFeeFlat)
	if err != nil {
		return engine.FeeSchedule{}, err
	}
	schemeFlat, err := decimal.NewFromString(cfg.SchemeFeeFlat)
	if err != nil {
		return engine.FeeSchedule{}, err
	}
	return engine.FeeSchedule{
		SourceFeeFlat: sourceFlat,
		SourceFeeBps:  cfg.SourceFeeBps,
		SchemeFeeFlat: schemeFlat,
		SchemeFeeBps:  cfg.SchemeFeeBps,
	}, nil
}
