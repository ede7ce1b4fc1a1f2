package domain

// ContentPart is one element of a model request: either plain text or an
// inline audio clip. Inline audio carries its bytes base64-encoded, the
// shape the inference wire format expects.
type ContentPart struct {
	Text       string       `json:"text,omitempty"`
	InlineData *InlineAudio `json:"inline_data,omitempty"`
}

type InlineAudio struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

func TextPart(text string) ContentPart {
	return ContentPart{Text: text}
}

func AudioPart(mimeType, base64Data string) ContentPart {
	return ContentPart{InlineData: &InlineAudio{MIMEType: mimeType, Data: base64Data}}
}

// Turn is a role-tagged list of content parts submitted to the model.
type Turn struct {
	Role  Role          `json:"role"`
	Parts []ContentPart `json:"parts"`
}
