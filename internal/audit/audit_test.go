package audit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
	"github.com/magabrotheeeer/subscription-admin-console/internal/session"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAMQPPublisher_FillsIDAndTime(t *testing.T) {
	ch := new(MockChannel)
	var published Event
	ch.On("Publish", "admin.audit", "admin.actions", false, false, mock.Anything).
		Run(func(args mock.Arguments) {
			msg := args.Get(4).(amqp.Publishing)
			require.NoError(t, json.Unmarshal(msg.Body, &published))
		}).
		Return(nil).Once()

	p := NewAMQPPublisher(ch, "admin.audit", "admin.actions")
	err := p.Publish(context.Background(), Event{Kind: KindUserBlock, Target: "user:42", AdminID: 1})
	require.NoError(t, err)

	assert.NotEmpty(t, published.ID)
	assert.Equal(t, KindUserBlock, published.Kind)
	assert.Equal(t, "user:42", published.Target)
	assert.WithinDuration(t, time.Now(), published.At, 5*time.Second)
	ch.AssertExpectations(t)
}

func TestAMQPPublisher_Error(t *testing.T) {
	ch := new(MockChannel)
	ch.On("Publish", mock.Anything, mock.Anything, false, false, mock.Anything).Return(errors.New("closed")).Once()

	err := NewAMQPPublisher(ch, "x", "y").Publish(context.Background(), Event{Kind: KindPromoDelete})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audit.Publish")
}

func TestSessionObserver(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e Event) bool {
		return e.Kind == "session.expired" && e.AdminID == 3 && e.AdminEmail == "a@b.c"
	})).Return(nil).Once()

	ctx := session.WithID(context.Background(), session.NewID())
	m := session.NewManager(session.NewMemoryStore(), newNoopLogger())
	require.NoError(t, m.Set(ctx, "tok", models.Admin{ID: 3, Email: "a@b.c"}))
	m.Subscribe(SessionObserver(pub, newNoopLogger()))

	require.NoError(t, m.Clear(ctx, session.ReasonExpired))
	pub.AssertExpectations(t)
}

func TestSessionObserver_PublishErrorIsSwallowed(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	observer := SessionObserver(pub, newNoopLogger())
	assert.NotPanics(t, func() {
		observer(context.Background(), session.Event{Reason: session.ReasonLogout, At: time.Now()})
	})
	pub.AssertExpectations(t)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), Event{}))
}
