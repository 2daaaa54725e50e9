package email

import (
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func TestRender_AccountOpened(t *testing.T) {
	body, err := Render(TemplateAccountOpened, map[string]string{
		"AccountID":   "2b1f6f0e-8a43-4c3e-9d59-3f2c4d1b6a11",
		"AccountType": "Checking",
		"OwnerID":     "7d3c0c52-91c5-4e0a-bb2d-5f8f1f3e2c40",
		"OwnerName":   "Ann",
		"DateCreated": "2024-01-01",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Ann opened a <strong>Checking</strong> account on 2024-01-01.")
	assert.Contains(t, body, "2b1f6f0e-8a43-4c3e-9d59-3f2c4d1b6a11")
	assert.Contains(t, body, "7d3c0c52-91c5-4e0a-bb2d-5f8f1f3e2c40")
}

func TestRender_EscapesValues(t *testing.T) {
	body, err := Render(TemplateAccountOpened, map[string]string{"OwnerName": "<script>"})
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	assert.Error(t, err)
}

func TestSendAccountOpenedEmail(t *testing.T) {
	logger := zerolog.Nop()
	sender := &fakeSender{}
	client := NewClientWithSender(sender, "", &logger)

	err := client.SendAccountOpenedEmail("ops@example.com", AccountOpened{
		AccountID:   "a-1",
		AccountType: "Savings",
		OwnerID:     "o-1",
		OwnerName:   "Bob",
		DateCreated: "2024-02-02",
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"ops@example.com"}, sender.sent[0].To)
	assert.Equal(t, defaultSender, sender.sent[0].From)
	assert.Equal(t, "New Savings account for Bob", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].Html, "a-1")
}

func TestSendEmail_SenderFailure(t *testing.T) {
	logger := zerolog.Nop()
	client := NewClientWithSender(&fakeSender{err: errors.New("rate limited")}, "ops <ops@example.com>", &logger)

	err := client.SendAccountOpenedEmail("ops@example.com", AccountOpened{})

	assert.ErrorContains(t, err, "rate limited")
}
