package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskAccountOpened is the task type sent after an account is committed.
const TaskAccountOpened = "account:opened"

// AccountOpenedPayload is the JSON payload of TaskAccountOpened.
type AccountOpenedPayload struct {
	AccountID   string `json:"account_id"`
	AccountType string `json:"account_type"`
	OwnerID     string `json:"owner_id"`
	OwnerName   string `json:"owner_name"`
	DateCreated string `json:"date_created"`
}

// NewAccountOpenedTask builds a default queue task retried up to 3 times,
// each attempt limited to 30 seconds.
func NewAccountOpenedTask(p AccountOpenedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskAccountOpened,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NotificationsEnabled reports whether account-opened notifications have a
// recipient and a mail client.
func (j *JobService) NotificationsEnabled() bool {
	return j != nil && j.notifyTo != "" && j.emailClient != nil
}

// NotifyAccountOpened enqueues TaskAccountOpened. It is a no-op when
// notifications are disabled.
func (j *JobService) NotifyAccountOpened(ctx context.Context, p AccountOpenedPayload) error {
	if !j.NotificationsEnabled() {
		return nil
	}

	task, err := NewAccountOpenedTask(p)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("account_id", p.AccountID).
		Msg("account opened notification enqueued")

	return nil
}
