package chat_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inspectly/qassist/internal/app/chat"
	"github.com/inspectly/qassist/internal/domain"
)

// fakeBlobs is an in-memory domain.BlobStore for tests.
type fakeBlobs struct {
	blobs   map[string][]byte
	deleted []string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{blobs: make(map[string][]byte)}
}

func (f *fakeBlobs) Put(ctx context.Context, name string, data []byte) error {
	if _, ok := f.blobs[name]; ok {
		return domain.ErrBlobExists
	}
	f.blobs[name] = data
	return nil
}

func (f *fakeBlobs) Get(ctx context.Context, name string) ([]byte, error) {
	data, ok := f.blobs[name]
	if !ok {
		return nil, domain.ErrBlobNotFound
	}
	return data, nil
}

func (f *fakeBlobs) Delete(ctx context.Context, name string) error {
	delete(f.blobs, name)
	f.deleted = append(f.deleted, name)
	return nil
}

func TestAssemblePartsLastFileFirst(t *testing.T) {
	ctx := context.Background()
	blobs := newFakeBlobs()
	blobs.blobs["a.wav"] = []byte("wav-bytes")
	blobs.blobs["b.mp3"] = []byte("mp3-bytes")

	parts := chat.AssembleParts(ctx, "hi", []string{"a.wav", "b.mp3"}, blobs)

	require.Len(t, parts, 3)

	// The most recently stored file comes first, the text part last.
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, "audio/mp3", parts[0].InlineData.MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("mp3-bytes")), parts[0].InlineData.Data)

	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "audio/wav", parts[1].InlineData.MIMEType)

	assert.Equal(t, "hi", parts[2].Text)
	assert.Nil(t, parts[2].InlineData)
}

func TestAssemblePartsSkipsNonAudio(t *testing.T) {
	ctx := context.Background()
	blobs := newFakeBlobs()
	blobs.blobs["doc.pdf"] = []byte("%PDF")

	parts := chat.AssembleParts(ctx, "hi", []string{"doc.pdf"}, blobs)
	require.Len(t, parts, 1)
	assert.Equal(t, "hi", parts[0].Text)

	parts = chat.AssembleParts(ctx, "", []string{"doc.pdf"}, blobs)
	assert.Empty(t, parts)
}

func TestAssemblePartsSkipsMissingBlob(t *testing.T) {
	ctx := context.Background()
	blobs := newFakeBlobs()

	parts := chat.AssembleParts(ctx, "hi", []string{"gone.wav"}, blobs)
	require.Len(t, parts, 1)
	assert.Equal(t, "hi", parts[0].Text)
}

func TestAssemblePartsCaseInsensitiveExtension(t *testing.T) {
	ctx := context.Background()
	blobs := newFakeBlobs()
	blobs.blobs["CLIP.WAV"] = []byte("wav-bytes")

	parts := chat.AssembleParts(ctx, "", []string{"CLIP.WAV"}, blobs)
	require.Len(t, parts, 1)
	assert.Equal(t, "audio/wav", parts[0].InlineData.MIMEType)
}

func TestAssemblePartsEmptyInput(t *testing.T) {
	parts := chat.AssembleParts(context.Background(), "", nil, newFakeBlobs())
	assert.Empty(t, parts)
}
