package memory_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memstore "github.com/inspectly/qassist/internal/adapters/storage/memory"
	"github.com/inspectly/qassist/internal/domain"
)

func TestFirstReferenceCreatesZeroValuedSession(t *testing.T) {
	store := memstore.NewSessionStore()

	snap := store.GetOrCreate("fresh")

	assert.Empty(t, snap.Messages)
	assert.Empty(t, snap.Files)
	assert.Equal(t, 0, snap.TicketCounter)
	assert.Empty(t, store.FeedbackEntries("fresh"))
}

func TestAnyMutatingOperationAutoCreates(t *testing.T) {
	store := memstore.NewSessionStore()

	store.AppendMessage("a", domain.RoleUser, "hi")
	store.RegisterUpload("b", "123_clip.wav")
	store.RecordFeedback("c", 5, "good")
	require.Equal(t, "Q001", store.NextTicket("d"))

	for _, id := range []domain.SessionID{"a", "b", "c", "d"} {
		_, err := store.Snapshot(id)
		require.NoError(t, err, "session %q should exist after first reference", id)
	}
}

func TestNextTicketSequence(t *testing.T) {
	store := memstore.NewSessionStore()

	for i := 1; i <= 10; i++ {
		want := fmt.Sprintf("Q%03d", i)
		assert.Equal(t, want, store.NextTicket("line-1"))
	}

	// An independent session has its own counter.
	assert.Equal(t, "Q001", store.NextTicket("line-2"))
}

func TestNextTicketConcurrentUniqueness(t *testing.T) {
	store := memstore.NewSessionStore()

	const n = 100
	tickets := make(chan string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tickets <- store.NextTicket("busy")
		}()
	}
	wg.Wait()
	close(tickets)

	seen := make(map[string]bool, n)
	for ticket := range tickets {
		require.False(t, seen[ticket], "duplicate ticket %s", ticket)
		seen[ticket] = true
	}
	require.Len(t, seen, n)

	snap, err := store.Snapshot("busy")
	require.NoError(t, err)
	assert.Equal(t, n, snap.TicketCounter)
}

func TestClearKeepsFeedbackAndTicketCounter(t *testing.T) {
	store := memstore.NewSessionStore()
	id := domain.SessionID("s1")

	store.AppendMessage(id, domain.RoleUser, "hello")
	store.AppendMessage(id, domain.RoleAssistant, "hi there")
	store.RegisterUpload(id, "1_a.wav")
	store.RegisterUpload(id, "2_b.mp3")
	store.RecordFeedback(id, 4, "helpful")
	store.NextTicket(id)

	removed, err := store.Clear(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"1_a.wav", "2_b.mp3"}, removed)

	snap, err := store.Snapshot(id)
	require.NoError(t, err)
	assert.Empty(t, snap.Messages)
	assert.Empty(t, snap.Files)
	assert.Equal(t, 1, snap.TicketCounter)

	fb := store.FeedbackEntries(id)
	require.Len(t, fb, 1)
	assert.Equal(t, 4, fb[0].Rating)
}

func TestClearUnknownSession(t *testing.T) {
	store := memstore.NewSessionStore()

	_, err := store.Clear("never-seen")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSnapshotDoesNotCreate(t *testing.T) {
	store := memstore.NewSessionStore()

	_, err := store.Snapshot("ghost")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Still absent afterwards.
	_, err = store.Snapshot("ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSnapshotIsACopy(t *testing.T) {
	store := memstore.NewSessionStore()
	id := domain.SessionID("s2")

	store.AppendMessage(id, domain.RoleUser, "first")
	snap, err := store.Snapshot(id)
	require.NoError(t, err)

	store.AppendMessage(id, domain.RoleUser, "second")
	store.RegisterUpload(id, "1_c.ogg")

	assert.Len(t, snap.Messages, 1)
	assert.Empty(t, snap.Files)
}

func TestFilesReturnsCopyInOrder(t *testing.T) {
	store := memstore.NewSessionStore()
	id := domain.SessionID("s3")

	store.RegisterUpload(id, "1_a.wav")
	store.RegisterUpload(id, "2_b.mp3")

	files := store.Files(id)
	require.Equal(t, []string{"1_a.wav", "2_b.mp3"}, files)

	files[0] = "mutated"
	assert.Equal(t, []string{"1_a.wav", "2_b.mp3"}, store.Files(id))
}
