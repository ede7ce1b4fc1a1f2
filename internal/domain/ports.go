package domain

import "context"

// InferenceGateway is the opaque model-call capability. Any failure is a
// single error; the core never retries and never branches on error kind.
type InferenceGateway interface {
	Generate(ctx context.Context, turns []Turn) (string, error)
}

// BlobStore persists uploaded bytes under a caller-chosen name.
type BlobStore interface {
	// Put stores data under name. Returns ErrBlobExists if the name is taken.
	Put(ctx context.Context, name string, data []byte) error
	// Get returns the stored bytes, or ErrBlobNotFound.
	Get(ctx context.Context, name string) ([]byte, error)
	// Delete removes a blob. Deleting an absent blob is not an error.
	Delete(ctx context.Context, name string) error
}

// SessionStore owns the session-id -> SessionState mapping. Every mutating
// operation creates the session on first reference; only Snapshot and Clear
// distinguish an unknown id. Operations on the same id are linearizable.
type SessionStore interface {
	GetOrCreate(id SessionID) SessionSnapshot
	AppendMessage(id SessionID, role Role, content string) Message
	RegisterUpload(id SessionID, fileRef string)
	// NextTicket increments the session counter and returns the formatted
	// ticket number ("Q001", "Q002", ...).
	NextTicket(id SessionID) string
	RecordFeedback(id SessionID, rating any, comment string) FeedbackEntry
	// Files returns a copy of the session's stored file names.
	Files(id SessionID) []string
	// Clear empties messages and files, returning the removed file names so
	// the caller can delete the blobs. Feedback and the ticket counter are
	// untouched. Returns ErrSessionNotFound for an unknown id.
	Clear(id SessionID) ([]string, error)
	// Snapshot is the read-only export projection. It does NOT create the
	// session; unknown ids return ErrSessionNotFound.
	Snapshot(id SessionID) (SessionSnapshot, error)
	// FeedbackEntries returns a copy of the session's feedback, nil if the
	// session was never created.
	FeedbackEntries(id SessionID) []FeedbackEntry
}
