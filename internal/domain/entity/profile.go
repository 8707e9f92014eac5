package entity

import "time"

const (
	ProfileKindParent    = "parent"
	ProfileKindCaregiver = "caregiver"
)

type Profile struct {
	ID          string `json:"id" firestore:"id"`
	Kind        string `json:"kind" firestore:"kind"` // "parent", "caregiver"
	DisplayName string `json:"display_name" firestore:"displayName"`
	Email       string `json:"email" firestore:"email"`
	Phone       string `json:"phone,omitempty" firestore:"phone,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	PostalCode  string `json:"postal_code,omitempty" firestore:"postalCode,omitempty"`
	City        string `json:"city,omitempty" firestore:"city,omitempty"`

	// Caregiver-only fields
	DaycareName string     `json:"daycare_name,omitempty" firestore:"daycareName,omitempty"`
	Bio         string     `json:"bio,omitempty" firestore:"bio,omitempty"`
	Capacity    int        `json:"capacity,omitempty" firestore:"capacity,omitempty"`
	FreeSpots   int        `json:"free_spots,omitempty" firestore:"freeSpots,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty" firestore:"approvedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (p *Profile) IsCaregiver() bool {
	return p != nil && p.Kind == ProfileKindCaregiver
}
