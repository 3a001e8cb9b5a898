package domain

import (
	"time"

	"gorm.io/gorm"
)

// Consultation represents a free consultation booking
type Consultation struct {
	ID                     string             `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name                   string             `gorm:"column:name;size:100;not null" json:"name"`
	Email                  string             `gorm:"column:email;size:255;not null;index" json:"email"`
	Phone                  string             `gorm:"column:phone;size:20;not null" json:"phone"`
	Company                string             `gorm:"column:company;size:100;not null" json:"company"`
	Industry               string             `gorm:"column:industry;size:100" json:"industry,omitempty"`
	BusinessSize           BusinessSize       `gorm:"column:business_size;size:20;not null" json:"business_size"`
	CurrentChallenges      string             `gorm:"column:current_challenges;type:text;not null" json:"current_challenges"`
	InterestedServices     StringList         `gorm:"column:interested_services;type:text" json:"interested_services"`
	Budget                 Budget             `gorm:"column:budget;size:20;not null" json:"budget"`
	Timeline               Timeline           `gorm:"column:timeline;size:20;not null" json:"timeline"`
	PreferredContactMethod string             `gorm:"column:preferred_contact_method;size:20;not null" json:"preferred_contact_method"`
	PreferredTime          string             `gorm:"column:preferred_time;size:50;not null" json:"preferred_time"`
	Timezone               string             `gorm:"column:timezone;size:50" json:"timezone,omitempty"`
	AdditionalNotes        string             `gorm:"column:additional_notes;type:text" json:"additional_notes,omitempty"`
	Status                 ConsultationStatus `gorm:"column:status;size:20;not null;index" json:"status"`
	LeadScore              int                `gorm:"column:lead_score;not null;index" json:"lead_score"`
	Priority               Priority           `gorm:"column:priority;size:10;not null;index" json:"priority"`
	ConsultationNotes      string             `gorm:"column:consultation_notes;type:text" json:"consultation_notes,omitempty"`
	ScheduledDate          *time.Time         `gorm:"column:scheduled_date" json:"scheduled_date"`
	FollowUpRequired       bool               `gorm:"column:follow_up_required;not null" json:"follow_up_required"`
	FollowUpDate           *time.Time         `gorm:"column:follow_up_date" json:"follow_up_date"`
	Tracking
}

// TableName specifies the table name for Consultation
func (Consultation) TableName() string {
	return "consultations"
}

// BeforeCreate hook
func (c *Consultation) BeforeCreate(tx *gorm.DB) error {
	c.stamp(&c.ID)
	if c.Status == "" {
		c.Status = ConsultationPending
	}
	if c.PreferredContactMethod == "" {
		c.PreferredContactMethod = "email"
	}
	if c.PreferredTime == "" {
		c.PreferredTime = "flexible"
	}
	if c.InterestedServices == nil {
		c.InterestedServices = StringList{}
	}
	return nil
}
