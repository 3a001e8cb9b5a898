// Package store persists submissions with gorm and answers list and
// aggregate queries over them.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"

	"leadcapture/internal/domain"
	"leadcapture/internal/metrics"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	defaultSort  = "created_at"
)

// ListQuery filters and pages a list request. Zero values take defaults.
type ListQuery struct {
	Page        int
	Limit       int
	Status      string
	Priority    string
	ServiceType string
	SortBy      string
	SortOrder   string
}

// Page describes the slice of results returned by a list call.
type Page struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func (q ListQuery) normalize(sortable []string) ListQuery {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	q.Limit = min(q.Limit, maxLimit)
	if !slices.Contains(sortable, q.SortBy) {
		q.SortBy = defaultSort
	}
	if strings.EqualFold(q.SortOrder, "asc") {
		q.SortOrder = "ASC"
	} else {
		q.SortOrder = "DESC"
	}
	return q
}

func (q ListQuery) order() string {
	if q.SortBy == defaultSort {
		return q.SortBy + " " + q.SortOrder + ", id"
	}
	return q.SortBy + " " + q.SortOrder + ", created_at DESC, id"
}

func observe(op string, start time.Time, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	metrics.RecordDBQuery(op, time.Since(start), err)
}

func create[T any](ctx context.Context, db *gorm.DB, op string, rec *T) error {
	start := time.Now()
	err := db.WithContext(ctx).Create(rec).Error
	observe(op, start, err)
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", op, err)
	}
	return nil
}

func get[T any](ctx context.Context, db *gorm.DB, op, id string) (*T, error) {
	start := time.Now()
	var rec T
	err := db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error
	observe(op, start, err)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", op, err)
	}
	return &rec, nil
}

func list[T any](ctx context.Context, db *gorm.DB, op string, q ListQuery, sortable []string) ([]T, Page, error) {
	q = q.normalize(sortable)
	start := time.Now()

	tx := db.WithContext(ctx).Model(new(T))
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Priority != "" {
		tx = tx.Where("priority = ?", q.Priority)
	}
	if q.ServiceType != "" {
		tx = tx.Where("service_type = ?", q.ServiceType)
	}

	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		observe(op, start, err)
		return nil, Page{}, fmt.Errorf("failed to count %s: %w", op, err)
	}

	items := make([]T, 0, q.Limit)
	err := tx.Order(q.order()).Offset((q.Page - 1) * q.Limit).Limit(q.Limit).Find(&items).Error
	observe(op, start, err)
	if err != nil {
		return nil, Page{}, fmt.Errorf("failed to list %s: %w", op, err)
	}

	return items, Page{
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(q.Limit))),
	}, nil
}

// markDelivered sets each delivered flag that is still false. Flags already
// set keep their original timestamp.
func markDelivered[T any](ctx context.Context, db *gorm.DB, op, id string, d domain.Delivery) error {
	if !d.UserSent && !d.AdminSent {
		return nil
	}
	start := time.Now()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if d.UserSent {
			err := tx.Model(new(T)).
				Where("id = ? AND email_sent = ?", id, false).
				Updates(map[string]any{"email_sent": true, "email_sent_at": d.At}).Error
			if err != nil {
				return err
			}
		}
		if d.AdminSent {
			err := tx.Model(new(T)).
				Where("id = ? AND admin_notified = ?", id, false).
				Updates(map[string]any{"admin_notified": true, "admin_notified_at": d.At}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	observe(op, start, err)
	if err != nil {
		return fmt.Errorf("failed to record delivery for %s: %w", op, err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
