package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

type testMsg struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestPublishMessage(t *testing.T) {
	t.Run("publishes persistent json", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("Publish", "admin.audit", "admin.actions", false, false, mock.MatchedBy(func(p amqp.Publishing) bool {
			var got testMsg
			if err := json.Unmarshal(p.Body, &got); err != nil {
				return false
			}
			return got == testMsg{ID: 1, Name: "Hello"} &&
				p.ContentType == "application/json" &&
				p.DeliveryMode == amqp.Persistent
		})).Return(nil).Once()

		err := PublishMessage(ch, "admin.audit", "admin.actions", testMsg{ID: 1, Name: "Hello"})
		require.NoError(t, err)
		ch.AssertExpectations(t)
	})

	t.Run("marshal error", func(t *testing.T) {
		ch := new(MockChannel)
		// В json marshal нельзя сериализовать канал
		badMsg := struct {
			Ch chan int `json:"ch"`
		}{
			Ch: make(chan int),
		}

		err := PublishMessage(ch, "", "q", badMsg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
		ch.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publish error", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("Publish", mock.Anything, mock.Anything, false, false, mock.Anything).Return(errors.New("channel closed")).Once()

		err := PublishMessage(ch, "x", "y", testMsg{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "channel closed")
	})
}
