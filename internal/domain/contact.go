package domain

import (
	"gorm.io/gorm"
)

const defaultContactSource = "contact_form"

// Contact represents a contact form submission
type Contact struct {
	ID       string        `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name     string        `gorm:"column:name;size:100;not null" json:"name"`
	Email    string        `gorm:"column:email;size:255;not null;index" json:"email"`
	Phone    string        `gorm:"column:phone;size:20" json:"phone,omitempty"`
	Company  string        `gorm:"column:company;size:100" json:"company,omitempty"`
	Subject  string        `gorm:"column:subject;size:200;not null" json:"subject"`
	Message  string        `gorm:"column:message;type:text;not null" json:"message"`
	Source   string        `gorm:"column:source;size:50;not null" json:"source"`
	Status   ContactStatus `gorm:"column:status;size:20;not null;index" json:"status"`
	Priority Priority      `gorm:"column:priority;size:10;not null;index" json:"priority"`
	Notes    Notes         `gorm:"column:notes;type:text" json:"notes"`
	Tracking
}

// TableName specifies the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}

// BeforeCreate hook
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	c.stamp(&c.ID)
	if c.Status == "" {
		c.Status = ContactNew
	}
	if c.Source == "" {
		c.Source = defaultContactSource
	}
	if c.Notes == nil {
		c.Notes = Notes{}
	}
	return nil
}
