package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"leadcapture/internal/domain"
)

var consultationSortable = []string{"created_at", "lead_score", "scheduled_date", "priority"}

// Consultations persists consultation bookings.
type Consultations struct {
	db *gorm.DB
}

// NewConsultations creates a consultation repository
func NewConsultations(db *gorm.DB) *Consultations {
	return &Consultations{db: db}
}

func (s *Consultations) Create(ctx context.Context, c *domain.Consultation) error {
	return create(ctx, s.db, "consultation", c)
}

func (s *Consultations) Get(ctx context.Context, id string) (*domain.Consultation, error) {
	return get[domain.Consultation](ctx, s.db, "consultation", id)
}

func (s *Consultations) List(ctx context.Context, q ListQuery) ([]domain.Consultation, Page, error) {
	q.ServiceType = ""
	return list[domain.Consultation](ctx, s.db, "consultation", q, consultationSortable)
}

// ConsultationUpdate is an operator change to a consultation. Nil fields are left unchanged.
type ConsultationUpdate struct {
	Status            domain.ConsultationStatus
	ScheduledDate     *time.Time
	ConsultationNotes *string
}

func (s *Consultations) UpdateStatus(ctx context.Context, id string, u ConsultationUpdate) (*domain.Consultation, error) {
	var out *domain.Consultation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := get[domain.Consultation](ctx, tx, "consultation", id)
		if err != nil {
			return err
		}
		updates := map[string]any{"status": u.Status}
		if u.ScheduledDate != nil {
			updates["scheduled_date"] = *u.ScheduledDate
		}
		if u.ConsultationNotes != nil {
			updates["consultation_notes"] = *u.ConsultationNotes
		}
		if err := tx.Model(c).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update consultation: %w", err)
		}
		out, err = get[domain.Consultation](ctx, tx, "consultation", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Consultations) MarkDelivered(ctx context.Context, id string, d domain.Delivery) error {
	return markDelivered[domain.Consultation](ctx, s.db, "consultation", id, d)
}

// ConsultationStats summarises the consultations table.
type ConsultationStats struct {
	Total            int64   `gorm:"column:total" json:"total"`
	Pending          int64   `gorm:"column:status_pending" json:"pending"`
	Scheduled        int64   `gorm:"column:status_scheduled" json:"scheduled"`
	Completed        int64   `gorm:"column:status_completed" json:"completed"`
	Cancelled        int64   `gorm:"column:status_cancelled" json:"cancelled"`
	NoShow           int64   `gorm:"column:status_no_show" json:"no_show"`
	HighPriority     int64   `gorm:"column:high_priority" json:"high_priority"`
	AverageLeadScore float64 `gorm:"column:average_lead_score" json:"average_lead_score"`
	EmailsSent       int64   `gorm:"column:emails_sent" json:"emails_sent"`
	AdminNotified    int64   `gorm:"column:admin_notified" json:"admin_notified"`
}

func (s *Consultations) Stats(ctx context.Context) (ConsultationStats, error) {
	var stats ConsultationStats
	start := time.Now()
	err := s.db.WithContext(ctx).Model(&domain.Consultation{}).Select(`
		COUNT(*) AS total,
		COUNT(CASE WHEN status = 'pending' THEN 1 END) AS status_pending,
		COUNT(CASE WHEN status = 'scheduled' THEN 1 END) AS status_scheduled,
		COUNT(CASE WHEN status = 'completed' THEN 1 END) AS status_completed,
		COUNT(CASE WHEN status = 'cancelled' THEN 1 END) AS status_cancelled,
		COUNT(CASE WHEN status = 'no_show' THEN 1 END) AS status_no_show,
		COUNT(CASE WHEN priority = 'high' THEN 1 END) AS high_priority,
		COALESCE(AVG(lead_score), 0) AS average_lead_score,
		COUNT(CASE WHEN email_sent THEN 1 END) AS emails_sent,
		COUNT(CASE WHEN admin_notified THEN 1 END) AS admin_notified`).
		Scan(&stats).Error
	observe("consultation.stats", start, err)
	if err != nil {
		return ConsultationStats{}, fmt.Errorf("failed to compute consultation stats: %w", err)
	}
	stats.AverageLeadScore = round2(stats.AverageLeadScore)
	return stats, nil
}

// LeadBucket aggregates consultations whose score falls in one band.
type LeadBucket struct {
	Category     string  `gorm:"column:lead_category" json:"lead_category"`
	Count        int64   `gorm:"column:lead_count" json:"count"`
	AverageScore float64 `gorm:"column:average_score" json:"average_score"`
}

// LeadStats buckets consultations by score: hot >= 80, warm >= 60, cold >= 40,
// very_cold below. Buckets are ordered by average score, highest first.
func (s *Consultations) LeadStats(ctx context.Context) ([]LeadBucket, error) {
	buckets := []LeadBucket{}
	start := time.Now()
	err := s.db.WithContext(ctx).Model(&domain.Consultation{}).Select(`
		CASE
			WHEN lead_score >= 80 THEN 'hot'
			WHEN lead_score >= 60 THEN 'warm'
			WHEN lead_score >= 40 THEN 'cold'
			ELSE 'very_cold'
		END AS lead_category,
		COUNT(*) AS lead_count,
		AVG(lead_score) AS average_score`).
		Group("lead_category").
		Order("average_score DESC").
		Scan(&buckets).Error
	observe("consultation.lead_stats", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to compute lead stats: %w", err)
	}
	for i := range buckets {
		buckets[i].AverageScore = round2(buckets[i].AverageScore)
	}
	return buckets, nil
}
