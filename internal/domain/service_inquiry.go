package domain

import (
	"time"

	"gorm.io/gorm"
)

// ServiceInquiry represents a request for a quote on one service
type ServiceInquiry struct {
	ID                   string        `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name                 string        `gorm:"column:name;size:100;not null" json:"name"`
	Email                string        `gorm:"column:email;size:255;not null;index" json:"email"`
	Phone                string        `gorm:"column:phone;size:20" json:"phone,omitempty"`
	Company              string        `gorm:"column:company;size:100" json:"company,omitempty"`
	ServiceType          ServiceType   `gorm:"column:service_type;size:50;not null;index" json:"service_type"`
	ProjectDescription   string        `gorm:"column:project_description;type:text;not null" json:"project_description"`
	Budget               Budget        `gorm:"column:budget;size:20;not null" json:"budget"`
	Timeline             Timeline      `gorm:"column:timeline;size:20;not null" json:"timeline"`
	CurrentWebsite       string        `gorm:"column:current_website;size:255" json:"current_website,omitempty"`
	CurrentChallenges    string        `gorm:"column:current_challenges;type:text" json:"current_challenges,omitempty"`
	SpecificRequirements StringList    `gorm:"column:specific_requirements;type:text" json:"specific_requirements"`
	TargetAudience       string        `gorm:"column:target_audience;type:text" json:"target_audience,omitempty"`
	CompetitorWebsites   StringList    `gorm:"column:competitor_websites;type:text" json:"competitor_websites"`
	PreferredStyle       string        `gorm:"column:preferred_style;size:50;not null" json:"preferred_style"`
	AdditionalServices   StringList    `gorm:"column:additional_services;type:text" json:"additional_services"`
	Status               InquiryStatus `gorm:"column:status;size:20;not null;index" json:"status"`
	EstimatedValue       float64       `gorm:"column:estimated_value;not null" json:"estimated_value"`
	Priority             Priority      `gorm:"column:priority;size:10;not null;index" json:"priority"`
	QuoteSent            bool          `gorm:"column:quote_sent;not null" json:"quote_sent"`
	QuoteSentAt          *time.Time    `gorm:"column:quote_sent_at" json:"quote_sent_at"`
	QuoteAmount          *float64      `gorm:"column:quote_amount" json:"quote_amount"`
	FollowUpDate         *time.Time    `gorm:"column:follow_up_date" json:"follow_up_date"`
	AssignedTo           string        `gorm:"column:assigned_to;size:100" json:"assigned_to,omitempty"`
	Notes                Notes         `gorm:"column:notes;type:text" json:"notes"`
	Tracking
}

// TableName specifies the table name for ServiceInquiry
func (ServiceInquiry) TableName() string {
	return "service_inquiries"
}

// BeforeCreate hook
func (s *ServiceInquiry) BeforeCreate(tx *gorm.DB) error {
	s.stamp(&s.ID)
	if s.Status == "" {
		s.Status = InquiryNew
	}
	if s.PreferredStyle == "" {
		s.PreferredStyle = "not_sure"
	}
	for _, list := range []*StringList{&s.SpecificRequirements, &s.CompetitorWebsites, &s.AdditionalServices} {
		if *list == nil {
			*list = StringList{}
		}
	}
	if s.Notes == nil {
		s.Notes = Notes{}
	}
	return nil
}
