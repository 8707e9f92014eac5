package entity

import "time"

// DefaultDaycareName is the display name applied when a care group is
// saved without one.
const DefaultDaycareName = "Meine Kindertagespflege"

// CareGroup is a caregiver-owned group chat: the caregiver plus the parents
// of the children in that caregiver's care. Exactly one active group exists
// per caregiver.
type CareGroup struct {
	CaregiverID    string    `json:"caregiver_id" firestore:"caregiverId"`
	ParticipantIDs []string  `json:"participant_ids" firestore:"participantIds"`
	DaycareName    string    `json:"daycare_name" firestore:"daycareName"`
	LogoImageURL   string    `json:"logo_image_url,omitempty" firestore:"logoImageUrl,omitempty"`
	Messages       []Message `json:"messages" firestore:"messages"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}

// IsGroupMember reports whether userID is the caregiver or one of the
// roster parents. A nil group or empty id is never a member.
func IsGroupMember(g *CareGroup, userID string) bool {
	if g == nil || userID == "" {
		return false
	}
	if userID == g.CaregiverID {
		return true
	}
	for _, id := range g.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}
