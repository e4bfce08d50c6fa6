package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"asset-tracker/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublish(t *testing.T) {
	w := &recordingWriter{}
	p := NewPublisher(w)

	err := p.Publish(context.Background(), &models.ChangeEvent{Entity: models.EntityCategory, Action: models.ActionDelete, ID: 7})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "category:7", string(w.msgs[0].Key))

	var ev models.ChangeEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, models.ActionDelete, ev.Action)
	assert.EqualValues(t, 7, ev.ID)
	assert.False(t, ev.OccurredAt.IsZero())

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishError(t *testing.T) {
	p := NewPublisher(&recordingWriter{err: errors.New("broker down")})
	err := p.Publish(context.Background(), &models.ChangeEvent{Entity: models.EntityAsset, Action: models.ActionCreate, ID: 1})
	assert.EqualError(t, err, "broker down")
}

func TestDisabledPublisher(t *testing.T) {
	var nilPub *Publisher
	assert.NoError(t, nilPub.Publish(context.Background(), &models.ChangeEvent{}))
	assert.NoError(t, NewPublisher(nil).Publish(context.Background(), &models.ChangeEvent{}))
	assert.NoError(t, NewPublisher(nil).Close())
}
