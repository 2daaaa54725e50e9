package job

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/deppfellow/accountowner/internal/config"
	"github.com/deppfellow/accountowner/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []*resend.SendEmailRequest
}

func (r *recordingSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	r.sent = append(r.sent, params)
	return &resend.SendEmailResponse{Id: "1"}, nil
}

func TestNewAccountOpenedTask(t *testing.T) {
	task, err := NewAccountOpenedTask(AccountOpenedPayload{AccountID: "a-1", OwnerName: "Ann"})
	require.NoError(t, err)

	assert.Equal(t, TaskAccountOpened, task.Type())

	var p AccountOpenedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "a-1", p.AccountID)
	assert.Equal(t, "Ann", p.OwnerName)
}

func TestHandleAccountOpenedTask(t *testing.T) {
	logger := zerolog.Nop()
	sender := &recordingSender{}
	j := &JobService{
		logger:      &logger,
		emailClient: email.NewClientWithSender(sender, "", &logger),
		notifyTo:    "ops@example.com",
	}

	task, err := NewAccountOpenedTask(AccountOpenedPayload{
		AccountID:   "a-1",
		AccountType: "Checking",
		OwnerID:     "o-1",
		OwnerName:   "Ann",
		DateCreated: "2024-01-01",
	})
	require.NoError(t, err)

	require.NoError(t, j.handleAccountOpenedTask(context.Background(), task))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"ops@example.com"}, sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Html, "a-1")
}

func TestHandleAccountOpenedTask_BadPayload(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}

	err := j.handleAccountOpenedTask(context.Background(), asynq.NewTask(TaskAccountOpened, []byte("{")))

	assert.Error(t, err)
}

func TestNotifyAccountOpened_DisabledIsNoop(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.False(t, j.NotificationsEnabled())
	assert.NoError(t, j.NotifyAccountOpened(ctx, AccountOpenedPayload{AccountID: "a-1"}))
}

func TestInitHandlers(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("missing configuration keeps notifications off", func(t *testing.T) {
		j := &JobService{logger: &logger}
		j.InitHandlers(&config.Config{}, &logger)
		assert.False(t, j.NotificationsEnabled())
	})

	t.Run("key and recipient enable notifications", func(t *testing.T) {
		j := &JobService{logger: &logger}
		j.InitHandlers(&config.Config{Integration: config.IntegrationConfig{
			ResendAPIKey:      "re_test",
			NotificationEmail: "ops@example.com",
		}}, &logger)
		assert.True(t, j.NotificationsEnabled())
	})
}
