package chat_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memstore "github.com/inspectly/qassist/internal/adapters/storage/memory"
	"github.com/inspectly/qassist/internal/app/chat"
	"github.com/inspectly/qassist/internal/domain"
)

// recordingGateway captures the turns it was called with.
type recordingGateway struct {
	turns []domain.Turn
	reply string
	err   error
}

func (g *recordingGateway) Generate(ctx context.Context, turns []domain.Turn) (string, error) {
	g.turns = turns
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func TestSendRecordsBothMessages(t *testing.T) {
	store := memstore.NewSessionStore()
	gateway := &recordingGateway{reply: "looks within tolerance"}
	svc := chat.NewService(gateway, store, newFakeBlobs(), time.Second)

	reply, err := svc.Send(context.Background(), chat.SendInput{
		SessionID: "s1",
		Message:   "check station 4",
	})
	require.NoError(t, err)
	assert.Equal(t, "looks within tolerance", reply)

	snap, err := store.Snapshot("s1")
	require.NoError(t, err)
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, domain.RoleUser, snap.Messages[0].Role)
	assert.Equal(t, "check station 4", snap.Messages[0].Content)
	assert.Equal(t, domain.RoleAssistant, snap.Messages[1].Role)
	assert.Equal(t, "looks within tolerance", snap.Messages[1].Content)
}

func TestSendSubmitsSingleUserTurn(t *testing.T) {
	store := memstore.NewSessionStore()
	blobs := newFakeBlobs()
	blobs.blobs["1_note.wav"] = []byte("audio")
	store.RegisterUpload("s1", "1_note.wav")

	gateway := &recordingGateway{reply: "ok"}
	svc := chat.NewService(gateway, store, blobs, 0)

	_, err := svc.Send(context.Background(), chat.SendInput{SessionID: "s1", Message: "listen"})
	require.NoError(t, err)

	require.Len(t, gateway.turns, 1)
	assert.Equal(t, domain.RoleUser, gateway.turns[0].Role)
	require.Len(t, gateway.turns[0].Parts, 2)
	assert.NotNil(t, gateway.turns[0].Parts[0].InlineData)
	assert.Equal(t, "listen", gateway.turns[0].Parts[1].Text)
}

func TestSendKeepsUserMessageOnFailure(t *testing.T) {
	store := memstore.NewSessionStore()
	gateway := &recordingGateway{err: errors.New("quota exceeded")}
	svc := chat.NewService(gateway, store, newFakeBlobs(), time.Second)

	_, err := svc.Send(context.Background(), chat.SendInput{
		SessionID: "s1",
		Message:   "hello",
	})
	require.Error(t, err)

	// The failed turn still leaves the user message in the history.
	snap, snapErr := store.Snapshot("s1")
	require.NoError(t, snapErr)
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, domain.RoleUser, snap.Messages[0].Role)
}
