package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "taskflow/docs"
	"taskflow/internal/config"
	"taskflow/internal/scheduler"
	"taskflow/internal/server"
)

// @title           Taskflow API
// @version         1.0
// @description     API for personal task management: recurring tasks, goals, analytics.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("server initialization failed")
	}

	sched := scheduler.New(time.Local)
	if _, err := sched.ScheduleDaily(cfg.SweepTime, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := s.Recurrence.RunSweep(ctx); err != nil {
			log.Error().Err(err).Msg("recurrence sweep failed")
		}
	}); err != nil {
		log.Fatal().Err(err).Str("sweep_time", cfg.SweepTime).Msg("invalid sweep schedule")
	}
	sched.Start()
	defer sched.Stop()

	s.Run()
}
