package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"leadcapture/internal/domain"
)

var inquirySortable = []string{"created_at", "estimated_value", "priority", "service_type"}

// ServiceInquiries persists service inquiries.
type ServiceInquiries struct {
	db *gorm.DB
}

// NewServiceInquiries creates a service inquiry repository
func NewServiceInquiries(db *gorm.DB) *ServiceInquiries {
	return &ServiceInquiries{db: db}
}

func (s *ServiceInquiries) Create(ctx context.Context, in *domain.ServiceInquiry) error {
	return create(ctx, s.db, "service_inquiry", in)
}

func (s *ServiceInquiries) Get(ctx context.Context, id string) (*domain.ServiceInquiry, error) {
	return get[domain.ServiceInquiry](ctx, s.db, "service_inquiry", id)
}

func (s *ServiceInquiries) List(ctx context.Context, q ListQuery) ([]domain.ServiceInquiry, Page, error) {
	return list[domain.ServiceInquiry](ctx, s.db, "service_inquiry", q, inquirySortable)
}

// InquiryUpdate is an operator change to a service inquiry. Nil fields are
// left unchanged; a non-empty Note is appended.
type InquiryUpdate struct {
	Status      domain.InquiryStatus
	QuoteAmount *float64
	AssignedTo  *string
	Note        string
	At          time.Time
}

// UpdateStatus applies u. Moving to quoted with a positive quote marks the
// quote as sent the first time it happens.
func (s *ServiceInquiries) UpdateStatus(ctx context.Context, id string, u InquiryUpdate) (*domain.ServiceInquiry, error) {
	var out *domain.ServiceInquiry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		in, err := get[domain.ServiceInquiry](ctx, tx, "service_inquiry", id)
		if err != nil {
			return err
		}
		updates := map[string]any{"status": u.Status}
		if u.QuoteAmount != nil {
			updates["quote_amount"] = *u.QuoteAmount
			if u.Status == domain.InquiryQuoted && *u.QuoteAmount > 0 && !in.QuoteSent {
				updates["quote_sent"] = true
				updates["quote_sent_at"] = u.At
			}
		}
		if u.AssignedTo != nil {
			updates["assigned_to"] = *u.AssignedTo
		}
		if u.Note != "" {
			in.Notes = append(in.Notes, domain.Note{Content: u.Note, CreatedAt: u.At, CreatedBy: "admin"})
			updates["notes"] = in.Notes
		}
		if err := tx.Model(in).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update service inquiry: %w", err)
		}
		out, err = get[domain.ServiceInquiry](ctx, tx, "service_inquiry", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ServiceInquiries) MarkDelivered(ctx context.Context, id string, d domain.Delivery) error {
	return markDelivered[domain.ServiceInquiry](ctx, s.db, "service_inquiry", id, d)
}

// InquiryStats summarises the service_inquiries table.
type InquiryStats struct {
	Total                 int64   `gorm:"column:total" json:"total"`
	New                   int64   `gorm:"column:status_new" json:"new"`
	Reviewing             int64   `gorm:"column:status_reviewing" json:"reviewing"`
	Quoted                int64   `gorm:"column:status_quoted" json:"quoted"`
	Approved              int64   `gorm:"column:status_approved" json:"approved"`
	InProgress            int64   `gorm:"column:status_in_progress" json:"in_progress"`
	Completed             int64   `gorm:"column:status_completed" json:"completed"`
	Cancelled             int64   `gorm:"column:status_cancelled" json:"cancelled"`
	TotalEstimatedValue   float64 `gorm:"column:total_estimated_value" json:"total_estimated_value"`
	AverageEstimatedValue float64 `gorm:"column:average_estimated_value" json:"average_estimated_value"`
	TotalQuoteAmount      float64 `gorm:"column:total_quote_amount" json:"total_quote_amount"`
	AverageQuoteAmount    float64 `gorm:"column:average_quote_amount" json:"average_quote_amount"`
	EmailsSent            int64   `gorm:"column:emails_sent" json:"emails_sent"`
	AdminNotified         int64   `gorm:"column:admin_notified" json:"admin_notified"`
}

func (s *ServiceInquiries) Stats(ctx context.Context) (InquiryStats, error) {
	var stats InquiryStats
	start := time.Now()
	err := s.db.WithContext(ctx).Model(&domain.ServiceInquiry{}).Select(`
		COUNT(*) AS total,
		COUNT(CASE WHEN status = 'new' THEN 1 END) AS status_new,
		COUNT(CASE WHEN status = 'reviewing' THEN 1 END) AS status_reviewing,
		COUNT(CASE WHEN status = 'quoted' THEN 1 END) AS status_quoted,
		COUNT(CASE WHEN status = 'approved' THEN 1 END) AS status_approved,
		COUNT(CASE WHEN status = 'in_progress' THEN 1 END) AS status_in_progress,
		COUNT(CASE WHEN status = 'completed' THEN 1 END) AS status_completed,
		COUNT(CASE WHEN status = 'cancelled' THEN 1 END) AS status_cancelled,
		COALESCE(SUM(estimated_value), 0) AS total_estimated_value,
		COALESCE(AVG(estimated_value), 0) AS average_estimated_value,
		COALESCE(SUM(quote_amount), 0) AS total_quote_amount,
		COALESCE(AVG(quote_amount), 0) AS average_quote_amount,
		COUNT(CASE WHEN email_sent THEN 1 END) AS emails_sent,
		COUNT(CASE WHEN admin_notified THEN 1 END) AS admin_notified`).
		Scan(&stats).Error
	observe("service_inquiry.stats", start, err)
	if err != nil {
		return InquiryStats{}, fmt.Errorf("failed to compute service inquiry stats: %w", err)
	}
	stats.TotalEstimatedValue = round2(stats.TotalEstimatedValue)
	stats.AverageEstimatedValue = round2(stats.AverageEstimatedValue)
	stats.TotalQuoteAmount = round2(stats.TotalQuoteAmount)
	stats.AverageQuoteAmount = round2(stats.AverageQuoteAmount)
	return stats, nil
}

// ServiceBreakdown aggregates inquiries for one service type.
type ServiceBreakdown struct {
	ServiceType  domain.ServiceType `gorm:"column:service_type" json:"service_type"`
	Count        int64              `gorm:"column:inquiry_count" json:"count"`
	TotalValue   float64            `gorm:"column:total_value" json:"total_value"`
	AverageValue float64            `gorm:"column:average_value" json:"average_value"`
	Completed    int64              `gorm:"column:completed" json:"completed"`
}

// StatsByService groups inquiries by service type, largest total value first.
func (s *ServiceInquiries) StatsByService(ctx context.Context) ([]ServiceBreakdown, error) {
	rows := []ServiceBreakdown{}
	start := time.Now()
	err := s.db.WithContext(ctx).Model(&domain.ServiceInquiry{}).Select(`
		service_type,
		COUNT(*) AS inquiry_count,
		COALESCE(SUM(estimated_value), 0) AS total_value,
		COALESCE(AVG(estimated_value), 0) AS average_value,
		COUNT(CASE WHEN status = 'completed' THEN 1 END) AS completed`).
		Group("service_type").
		Order("total_value DESC").
		Scan(&rows).Error
	observe("service_inquiry.by_service", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to compute service breakdown: %w", err)
	}
	for i := range rows {
		rows[i].TotalValue = round2(rows[i].TotalValue)
		rows[i].AverageValue = round2(rows[i].AverageValue)
	}
	return rows, nil
}
