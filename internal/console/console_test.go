package console

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_SendText(t *testing.T) {
	var buf bytes.Buffer
	g := New(&buf)

	require.NoError(t, g.SendText(context.Background(), "Hallo", ConversationToken))
	require.NoError(t, g.SendText(context.Background(), "Welt", ConversationToken))

	assert.Equal(t, "Hallo\nWelt\n", buf.String())
}

func TestGateway_Self(t *testing.T) {
	self := New(&bytes.Buffer{}).Self()
	assert.Equal(t, "wetter", self.UserName)
	assert.Equal(t, "Wetterfrosch", self.DisplayName)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestGateway_SendTextWriteError(t *testing.T) {
	err := New(brokenWriter{}).SendText(context.Background(), "Hallo", ConversationToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed pipe")
}

func TestMessage(t *testing.T) {
	m := Message("@wetter London")
	assert.Equal(t, "@wetter London", m.Text)
	assert.Equal(t, ConversationToken, m.ConversationToken)
}
