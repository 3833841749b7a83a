// File: internal/audit/model.go
package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventKind names the outcome of a login or registration attempt.
type EventKind string

const (
	KindLoginSucceeded            EventKind = "login_succeeded"
	KindLoginFailed               EventKind = "login_failed"
	KindRegistrationSucceeded     EventKind = "registration_succeeded"
	KindRegistrationAuthFailed    EventKind = "registration_auth_failed"
	KindRegistrationProfileFailed EventKind = "registration_profile_failed"
)

// AuthEvent is one row of the auth audit trail.
type AuthEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Kind      EventKind `gorm:"type:varchar(64);not null;index:idx_auth_events_kind_created" json:"kind"`
	UID       string    `gorm:"column:uid;type:varchar(128);index" json:"uid,omitempty"`
	Email     string    `gorm:"type:varchar(320)" json:"email,omitempty"`
	Detail    string    `gorm:"type:text" json:"detail,omitempty"`
	CreatedAt time.Time `gorm:"not null;index:idx_auth_events_kind_created" json:"createdAt"`
}

// TableName overrides the default GORM table name.
func (AuthEvent) TableName() string {
	return "auth_events"
}

// BeforeCreate assigns the id when the caller left it empty.
func (e *AuthEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
