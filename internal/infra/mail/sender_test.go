package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ghostreach/internal/entity"
	"github.com/xavierca1/ghostreach/internal/logger"
)

type MockDialer struct {
	mock.Mock
}

func (m *MockDialer) DialAndSend(msgs ...*gomail.Message) error {
	args := m.Called(msgs)
	return args.Error(0)
}

func TestEmailSender_Send(t *testing.T) {
	dialer := new(MockDialer)
	var sent *gomail.Message
	dialer.On("DialAndSend", mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(0).([]*gomail.Message)[0]
	}).Return(nil)

	s := NewEmailSender("smtp.example.com", 587, "u", "p", "team@ghostreach.local").WithDialer(dialer)

	err := s.Send(context.Background(), entity.OutreachMessage{
		ID:      "msg-1",
		To:      "ada@acme.io",
		Name:    "Ada",
		Subject: "Hello acme",
		Body:    "Hi Ada",
	})
	require.NoError(t, err)
	require.NotNil(t, sent)

	assert.Equal(t, []string{"team@ghostreach.local"}, sent.GetHeader("From"))
	assert.Equal(t, []string{`"Ada" <ada@acme.io>`}, sent.GetHeader("To"))
	assert.Equal(t, []string{"Hello acme"}, sent.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = sent.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Hi Ada")
	dialer.AssertExpectations(t)
}

func TestEmailSender_SendFailure(t *testing.T) {
	dialer := new(MockDialer)
	dialer.On("DialAndSend", mock.Anything).Return(errors.New("connection refused"))

	s := NewEmailSender("smtp.example.com", 587, "", "", "x@y.z").WithDialer(dialer)
	err := s.Send(context.Background(), entity.OutreachMessage{ID: "m", To: "a@x.com", Body: "b"})

	assert.ErrorContains(t, err, "connection refused")
}

func TestEmailSender_RequiresRecipient(t *testing.T) {
	dialer := new(MockDialer)
	s := NewEmailSender("h", 25, "", "", "x@y.z").WithDialer(dialer)

	assert.Error(t, s.Send(context.Background(), entity.OutreachMessage{ID: "m"}))
	dialer.AssertNotCalled(t, "DialAndSend", mock.Anything)
}

func TestLogSender_LogsMessage(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewLogSender(logger.FromZap(zap.New(core)))

	require.NoError(t, s.Send(context.Background(), entity.OutreachMessage{ID: "m", To: "a@x.com", Body: "Hi A"}))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "a@x.com", fields["to"])
	assert.Equal(t, "Hi A", fields["body"])
}
