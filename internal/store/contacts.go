package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"leadcapture/internal/domain"
)

var contactSortable = []string{"created_at", "priority"}

// Contacts persists contact submissions.
type Contacts struct {
	db *gorm.DB
}

// NewContacts creates a contact repository
func NewContacts(db *gorm.DB) *Contacts {
	return &Contacts{db: db}
}

func (s *Contacts) Create(ctx context.Context, c *domain.Contact) error {
	return create(ctx, s.db, "contact", c)
}

func (s *Contacts) Get(ctx context.Context, id string) (*domain.Contact, error) {
	return get[domain.Contact](ctx, s.db, "contact", id)
}

func (s *Contacts) List(ctx context.Context, q ListQuery) ([]domain.Contact, Page, error) {
	q.ServiceType = ""
	return list[domain.Contact](ctx, s.db, "contact", q, contactSortable)
}

// ContactUpdate is an operator change to a contact. A non-empty Note is
// appended to the record's notes.
type ContactUpdate struct {
	Status domain.ContactStatus
	Note   string
	At     time.Time
}

func (s *Contacts) UpdateStatus(ctx context.Context, id string, u ContactUpdate) (*domain.Contact, error) {
	var out *domain.Contact
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := get[domain.Contact](ctx, tx, "contact", id)
		if err != nil {
			return err
		}
		updates := map[string]any{"status": u.Status}
		if u.Note != "" {
			c.Notes = append(c.Notes, domain.Note{Content: u.Note, CreatedAt: u.At, CreatedBy: "admin"})
			updates["notes"] = c.Notes
		}
		if err := tx.Model(c).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update contact: %w", err)
		}
		out, err = get[domain.Contact](ctx, tx, "contact", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Contacts) MarkDelivered(ctx context.Context, id string, d domain.Delivery) error {
	return markDelivered[domain.Contact](ctx, s.db, "contact", id, d)
}

// ContactStats summarises the contacts table.
type ContactStats struct {
	Total          int64 `gorm:"column:total" json:"total"`
	New            int64 `gorm:"column:status_new" json:"new"`
	InProgress     int64 `gorm:"column:status_in_progress" json:"in_progress"`
	Resolved       int64 `gorm:"column:status_resolved" json:"resolved"`
	Closed         int64 `gorm:"column:status_closed" json:"closed"`
	UrgentPriority int64 `gorm:"column:urgent_priority" json:"urgent_priority"`
	HighPriority   int64 `gorm:"column:high_priority" json:"high_priority"`
	EmailsSent     int64 `gorm:"column:emails_sent" json:"emails_sent"`
	AdminNotified  int64 `gorm:"column:admin_notified" json:"admin_notified"`
}

func (s *Contacts) Stats(ctx context.Context) (ContactStats, error) {
	var stats ContactStats
	start := time.Now()
	err := s.db.WithContext(ctx).Model(&domain.Contact{}).Select(`
		COUNT(*) AS total,
		COUNT(CASE WHEN status = 'new' THEN 1 END) AS status_new,
		COUNT(CASE WHEN status = 'in_progress' THEN 1 END) AS status_in_progress,
		COUNT(CASE WHEN status = 'resolved' THEN 1 END) AS status_resolved,
		COUNT(CASE WHEN status = 'closed' THEN 1 END) AS status_closed,
		COUNT(CASE WHEN priority = 'urgent' THEN 1 END) AS urgent_priority,
		COUNT(CASE WHEN priority = 'high' THEN 1 END) AS high_priority,
		COUNT(CASE WHEN email_sent THEN 1 END) AS emails_sent,
		COUNT(CASE WHEN admin_notified THEN 1 END) AS admin_notified`).
		Scan(&stats).Error
	observe("contact.stats", start, err)
	if err != nil {
		return ContactStats{}, fmt.Errorf("failed to compute contact stats: %w", err)
	}
	return stats, nil
}
