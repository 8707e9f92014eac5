package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkReadBy(t *testing.T) {
	conversation := &Conversation{
		ID:           "a--b",
		Participants: []string{"a", "b"},
		ReadBy:       []string{"a"},
	}

	assert.True(t, conversation.MarkReadBy("b"))
	assert.Equal(t, []string{"a", "b"}, conversation.ReadBy)

	// Marking twice leaves the set unchanged: no duplicates, no reorder.
	assert.False(t, conversation.MarkReadBy("b"))
	assert.Equal(t, []string{"a", "b"}, conversation.ReadBy)

	assert.True(t, conversation.IsReadBy("a"))
	assert.True(t, conversation.IsReadBy("b"))
	assert.False(t, conversation.IsReadBy("c"))
}

func TestHasParticipant(t *testing.T) {
	conversation := &Conversation{Participants: []string{"a", "b"}}

	assert.True(t, conversation.HasParticipant("a"))
	assert.False(t, conversation.HasParticipant("c"))
	assert.False(t, conversation.HasParticipant(""))

	var nilConversation *Conversation
	assert.False(t, nilConversation.HasParticipant("a"))
}

func TestMessageHasContent(t *testing.T) {
	assert.False(t, (&Message{}).HasContent())
	assert.True(t, (&Message{Body: "hi"}).HasContent())
	assert.True(t, (&Message{Attachments: []Attachment{{FileName: "photo.jpg"}}}).HasContent())
}
