package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/accountowner/internal/config"
	"github.com/deppfellow/accountowner/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// InitHandlers prepares the dependencies of the task handlers. Account
// notifications stay disabled unless both a Resend key and a recipient are
// configured.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Integration.NotificationsEnabled() {
		logger.Info().Msg("account notifications disabled, no resend key or notification email configured")
		return
	}

	j.emailClient = email.NewClient(cfg, logger)
	j.notifyTo = cfg.Integration.NotificationEmail
}

func (j *JobService) handleAccountOpenedTask(ctx context.Context, t *asynq.Task) error {
	var p AccountOpenedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal account opened payload: %w", err)
	}

	if j.emailClient == nil {
		// Queued before notifications were disabled.
		j.logger.Warn().Str("account_id", p.AccountID).Msg("dropping account opened task, notifications disabled")
		return nil
	}

	j.logger.Info().
		Str("type", "account_opened").
		Str("account_id", p.AccountID).
		Msg("Processing account opened task")

	err := j.emailClient.SendAccountOpenedEmail(j.notifyTo, email.AccountOpened{
		AccountID:   p.AccountID,
		AccountType: p.AccountType,
		OwnerID:     p.OwnerID,
		OwnerName:   p.OwnerName,
		DateCreated: p.DateCreated,
	})
	if err != nil {
		j.logger.Error().
			Str("type", "account_opened").
			Str("account_id", p.AccountID).
			Err(err).
			Msg("Failed to send account opened email")
		return err
	}

	j.logger.Info().
		Str("type", "account_opened").
		Str("account_id", p.AccountID).
		Msg("Successfully sent account opened email")

	return nil
}
