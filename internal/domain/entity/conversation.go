package entity

import "time"

// Conversation is a direct message thread between exactly two participants,
// keyed by the canonical id derived from the participant pair.
type Conversation struct {
	ID            string    `json:"id" firestore:"id"`
	Participants  []string  `json:"participants" firestore:"participants"`
	ReadBy        []string  `json:"read_by" firestore:"readBy"`
	LastMessage   string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time `json:"last_message_at" firestore:"lastMessageAt"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	if c == nil || userID == "" {
		return false
	}
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

func (c *Conversation) IsReadBy(userID string) bool {
	for _, r := range c.ReadBy {
		if r == userID {
			return true
		}
	}
	return false
}

// MarkReadBy appends userID to the ReadBy set. It reports whether the set
// changed; marking an already-present participant is a no-op and does not
// duplicate or reorder entries.
func (c *Conversation) MarkReadBy(userID string) bool {
	if c.IsReadBy(userID) {
		return false
	}
	c.ReadBy = append(c.ReadBy, userID)
	return true
}
