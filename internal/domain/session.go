package domain

import "fmt"

// Message represents a single turn in a session (user or assistant).
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp Timestamp `json:"timestamp"`
}

// FeedbackEntry is a rating left by the user. The rating is whatever the
// caller sent (number or string); no range is enforced here.
type FeedbackEntry struct {
	Rating    any       `json:"rating"`
	Comment   string    `json:"comment"`
	Timestamp Timestamp `json:"timestamp"`
}

// SessionState holds everything the backend tracks for one session id.
// It lives only in process memory; a restart starts every session over.
type SessionState struct {
	Messages []Message
	// Files are stored blob names, in upload order.
	Files []string
	// TicketCounter counts inspection tickets created in this session.
	// It survives a chat clear; only a restart resets it.
	TicketCounter int
	// Feedback also survives a chat clear.
	Feedback []FeedbackEntry
}

// SessionSnapshot is the read-only export projection of a session.
type SessionSnapshot struct {
	SessionID     SessionID `json:"session_id"`
	Messages      []Message `json:"messages"`
	Files         []string  `json:"files"`
	TicketCounter int       `json:"ticket_counter"`
}

// Ticket is a quality-inspection ticket created within a session.
type Ticket struct {
	Number    string    `json:"ticket_number"`
	SessionID SessionID `json:"session_id"`
	Type      string    `json:"type"`
	CreatedAt Timestamp `json:"timestamp"`
}

const TicketTypeQualityInspection = "quality_inspection"

// FormatTicketNumber derives the ticket number from the session counter:
// counter 1 -> "Q001". Always derived, never stored alongside the counter.
func FormatTicketNumber(counter int) string {
	return fmt.Sprintf("Q%03d", counter)
}
