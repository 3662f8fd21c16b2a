package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"p9e.in/ascomp/models"
)

// Filter narrows the dashboard. Zero values mean no restriction.
type Filter struct {
	From   time.Time
	To     time.Time
	SiteID *uuid.UUID
}

// Service loads dashboard data from the database.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (f Filter) apply(q *gorm.DB, dateColumn string) *gorm.DB {
	if !f.From.IsZero() {
		q = q.Where(dateColumn+" >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where(dateColumn+" < ?", f.To)
	}
	if f.SiteID != nil {
		q = q.Where("site_id = ?", *f.SiteID)
	}
	return q
}

// Dashboard runs the RMA, DTR and report queries concurrently and
// aggregates the result. The first failing query cancels the others.
func (s *Service) Dashboard(ctx context.Context, f Filter) (*Dashboard, error) {
	var (
		rmas     []models.RMA
		openDTRs int64
		reports  int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := f.apply(s.db.WithContext(ctx).Model(&models.RMA{}), "rma_raised_date")
		if err := q.Find(&rmas).Error; err != nil {
			return fmt.Errorf("load rmas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		q := f.apply(s.db.WithContext(ctx).Model(&models.DTR{}), "error_date").
			Where("call_status IN ?", []string{models.DTROpen, models.DTRInProgress})
		if err := q.Count(&openDTRs).Error; err != nil {
			return fmt.Errorf("count dtrs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		q := f.apply(s.db.WithContext(ctx).Model(&models.ASCOMPReport{}), "date")
		if err := q.Count(&reports).Error; err != nil {
			return fmt.Errorf("count reports: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := Summarize(rmas)
	d.OpenDTRs = openDTRs
	d.Reports = reports
	return d, nil
}
