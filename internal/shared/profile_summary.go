// File: internal/shared/profile_summary.go
package shared

// ProfileSummary is the public slice of a user profile, used by search results.
type ProfileSummary struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}
