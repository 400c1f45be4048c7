package scheduler

import (
	"context"
	"fmt"

	"framtt_backend/platform/config"
	"framtt_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// NotificationHandler delivers a dequeued notification email.
type NotificationHandler interface {
	DeliverEmail(ctx context.Context, payload NotificationEmailPayload) error
}

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	handler NotificationHandler
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, handler NotificationHandler, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		handler: handler,
		log:     log,
	}

	mux.HandleFunc(TaskNotificationEmail, w.handleNotificationEmail)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleNotificationEmail(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseNotificationEmailPayload(task)
	if err != nil {
		// A malformed payload never succeeds on retry.
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.To == "" {
		return nil
	}
	return w.handler.DeliverEmail(ctx, payload)
}
