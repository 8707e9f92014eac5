package entity

import "time"

// Attachment is a file associated with a message. Inbound attachments carry
// an inline data payload; persisted attachments carry a resolved Key/URL
// instead. The payload is never re-derived from a stored attachment.
type Attachment struct {
	FileName string `json:"file_name" firestore:"fileName"`
	MimeType string `json:"mime_type,omitempty" firestore:"mimeType,omitempty"`
	Size     int64  `json:"size" firestore:"size"`

	// Data holds the self-describing inline payload ("data:<mime>;base64,...")
	// on the way in. It is never persisted.
	Data string `json:"data,omitempty" firestore:"-"`

	Key string `json:"key,omitempty" firestore:"key,omitempty"`
	URL string `json:"url,omitempty" firestore:"url,omitempty"`
}

type Message struct {
	ID             string       `json:"id" firestore:"id"`
	ConversationID string       `json:"conversation_id" firestore:"conversationId"`
	SenderID       string       `json:"sender_id" firestore:"senderId"`
	RecipientID    string       `json:"recipient_id,omitempty" firestore:"recipientId,omitempty"`
	Body           string       `json:"body" firestore:"body"`
	Attachments    []Attachment `json:"attachments,omitempty" firestore:"attachments,omitempty"`
	CreatedAt      time.Time    `json:"created_at" firestore:"createdAt"`
}

// HasContent reports whether the message carries a body or at least one
// attachment. A message with neither never reaches the store.
func (m *Message) HasContent() bool {
	return m.Body != "" || len(m.Attachments) > 0
}
