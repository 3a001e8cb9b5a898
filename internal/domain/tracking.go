package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tracking holds audit and email-delivery fields shared by every submission kind.
// EmailSent and AdminNotified only ever move from false to true.
type Tracking struct {
	IPAddress       string     `gorm:"column:ip_address;size:45" json:"ip_address,omitempty"`
	UserAgent       string     `gorm:"column:user_agent;type:text" json:"user_agent,omitempty"`
	EmailSent       bool       `gorm:"column:email_sent;not null" json:"email_sent"`
	EmailSentAt     *time.Time `gorm:"column:email_sent_at" json:"email_sent_at"`
	AdminNotified   bool       `gorm:"column:admin_notified;not null" json:"admin_notified"`
	AdminNotifiedAt *time.Time `gorm:"column:admin_notified_at" json:"admin_notified_at"`
	CreatedAt       time.Time  `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// Delivery is the outcome of one notification round for a record.
type Delivery struct {
	UserSent  bool
	AdminSent bool
	At        time.Time
}

// Apply sets the flags delivered in d that are not already set.
func (t *Tracking) Apply(d Delivery) {
	if d.UserSent && !t.EmailSent {
		at := d.At
		t.EmailSent = true
		t.EmailSentAt = &at
	}
	if d.AdminSent && !t.AdminNotified {
		at := d.At
		t.AdminNotified = true
		t.AdminNotifiedAt = &at
	}
}

func (t *Tracking) stamp(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
}
