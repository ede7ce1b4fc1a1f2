package chat

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"

	"github.com/inspectly/qassist/internal/domain"
	"github.com/inspectly/qassist/internal/observability"
)

// audioMIMETypes is the fixed allow-list of upload extensions the model
// accepts as inline audio. Anything else is skipped without error.
var audioMIMETypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mp3",
	".aiff": "audio/aiff",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

// AssembleParts builds the ordered content-part list for one model call:
// the text (if any) plus one inline-audio part per qualifying stored file.
//
// Each audio part is inserted at the FRONT of the list, so the last file in
// the session ends up first and the text part always last. That ordering is
// kept as-is for compatibility with the behavior clients already depend on.
// Files that are missing, unreadable, or not on the audio allow-list are
// skipped; an empty result is valid.
func AssembleParts(ctx context.Context, text string, fileRefs []string, blobs domain.BlobStore) []domain.ContentPart {
	log := observability.LoggerFromContext(ctx)

	var parts []domain.ContentPart
	if text != "" {
		parts = append(parts, domain.TextPart(text))
	}

	for _, ref := range fileRefs {
		mimeType, ok := audioMIMETypes[strings.ToLower(filepath.Ext(ref))]
		if !ok {
			continue
		}

		data, err := blobs.Get(ctx, ref)
		if err != nil {
			log.Warn("skipping unreadable upload", "file", ref, "error", err)
			continue
		}

		part := domain.AudioPart(mimeType, base64.StdEncoding.EncodeToString(data))
		parts = append([]domain.ContentPart{part}, parts...)
	}

	return parts
}
