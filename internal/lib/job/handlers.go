package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// WelcomeSender delivers welcome emails. *email.Client implements it.
type WelcomeSender interface {
	SendWelcomeEmail(to, name string) error
}

func (j *JobService) handleWelcomeEmailTask(_ context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().Str("type", "welcome").Str("to", p.To).Logger()
	log.Info().Msg("Processing welcome email task")

	if err := j.sender.SendWelcomeEmail(p.To, p.Name); err != nil {
		log.Error().Err(err).Msg("Failed to send welcome email")
		return err
	}

	log.Info().Msg("Successfully sent welcome email")
	return nil
}
