// File: internal/profile/model.go
package profile

import (
	"strings"
	"time"

	"adventure_backend/internal/shared"
)

// Profile is the user document stored at users/{uid}. Field names match what the
// mobile client reads.
type Profile struct {
	UID       string    `firestore:"uid" json:"uid"`
	FirstName string    `firestore:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string    `firestore:"lastName,omitempty" json:"lastName,omitempty"`
	Name      string    `firestore:"name" json:"name"`
	Email     string    `firestore:"email" json:"email"`
	Birthday  string    `firestore:"birthday,omitempty" json:"birthday,omitempty"`
	PhotoURL  string    `firestore:"photoUrl" json:"photoUrl"`
	Points    int64     `firestore:"points" json:"points"`
	Bio       string    `firestore:"bio,omitempty" json:"bio,omitempty"`
	JoinedAt  time.Time `firestore:"joinedAt,serverTimestamp" json:"joinedAt"`
}

// FullName joins first and last name the way the profile screen shows it.
func FullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// Summary is the searchable projection of a profile.
func (p *Profile) Summary() shared.ProfileSummary {
	return shared.ProfileSummary{
		UID:      p.UID,
		Name:     p.Name,
		Email:    p.Email,
		PhotoURL: p.PhotoURL,
	}
}

// UpdateBioRequest is the body of PATCH /profile/me.
type UpdateBioRequest struct {
	Bio string `json:"bio" validate:"max=280"`
}
