// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued (producer) through asynq.Client
//   - a server runs workers that process them (consumer) through asynq.Server
//
// The only task today is the welcome email sent after a user is created.
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	sender WelcomeSender
	logger *zerolog.Logger
}

// NewJobService creates a JobService on the Redis at redisAddr. Workers use
// sender to deliver welcome emails.
//
// Queue weights give "critical" tasks more worker share:
// out of 10 workers roughly 6 serve critical, 3 default and 1 low.
func NewJobService(logger *zerolog.Logger, redisAddr string, sender WelcomeSender) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		sender: sender,
		logger: logger,
	}
}

// Start registers the task handlers and starts the workers in the background.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)

	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(mux)
}

// EnqueueWelcome schedules the welcome email for a new user.
func (j *JobService) EnqueueWelcome(ctx context.Context, to, name string) error {
	task, err := NewWelcomeEmailTask(to, name)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskWelcome, err)
	}

	j.logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("enqueued welcome email")
	return nil
}

// Stop gracefully stops the job server and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}
