package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"framtt_backend/internal/email"
	"framtt_backend/internal/notification"
	"framtt_backend/internal/scheduler"
	"framtt_backend/platform/config"
	"framtt_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}
	if !email.Available(sender) {
		log.Warn("email provider is noop; queued notifications will be dropped")
	}

	// The worker only delivers; the API process decides what to enqueue.
	notificationModule := notification.New(sender, cfg, log)

	worker, err := scheduler.NewWorker(cfg, notificationModule, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}
