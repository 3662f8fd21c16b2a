package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"p9e.in/ascomp/models"
)

var projectorListing = listing{
	filters: map[string]string{"status": "status", "siteId": "site_id", "brand": "brand", "model": "model"},
	sorts:   []string{"serial_number", "model", "created_at", "hours_used"},
	search:  []string{"serial_number", "model", "brand", "auditorium"},
	sort:    "serial_number",
}

func validateProjector(p *models.Projector) error {
	if strings.TrimSpace(p.SerialNumber) == "" {
		return errors.New("serialNumber is required")
	}
	if p.Status != "" && !oneOf(p.Status, models.ProjectorStatuses) {
		return fmt.Errorf("unknown status %q", p.Status)
	}
	if p.HoursUsed < 0 || p.ExpectedLife < 0 {
		return errors.New("hours cannot be negative")
	}
	if p.WarrantyStart != nil && p.WarrantyEnd != nil && p.WarrantyEnd.Time().Before(p.WarrantyStart.Time()) {
		return errors.New("warrantyEnd is before warrantyStart")
	}
	return nil
}

func (h *Handler) ListProjectors(w http.ResponseWriter, r *http.Request) {
	var projectors []models.Projector
	h.list(w, r, &models.Projector{}, &projectors, projectorListing)
}

func (h *Handler) CreateProjector(w http.ResponseWriter, r *http.Request) {
	var p models.Projector
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateProjector(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p.ID = uuid.Nil
	p.Site = nil
	if err := h.DB.WithContext(r.Context()).Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "serialNumber already exists", http.StatusConflict)
			return
		}
		h.Log.Error("create projector failed", zap.Error(err))
		http.Error(w, "failed to save projector", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetProjector(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var p models.Projector
	if err := h.DB.WithContext(r.Context()).Preload("Site").First(&p, "id = ?", id).Error; err != nil {
		h.dbError(w, err, "projector")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateProjector(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	db := h.DB.WithContext(r.Context())
	var p models.Projector
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		h.dbError(w, err, "projector")
		return
	}
	createdAt := p.CreatedAt
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	p.ID, p.CreatedAt, p.Site = id, createdAt, nil
	if err := validateProjector(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := db.Save(&p).Error; err != nil {
		h.Log.Error("update projector failed", zap.String("projector_id", id.String()), zap.Error(err))
		http.Error(w, "failed to update projector", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProjector(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, &models.Projector{}, "projector")
}

// ProjectorHistory returns the projector with every RMA, DTR and service
// report logged against its serial number. The three lookups run
// concurrently.
func (h *Handler) ProjectorHistory(w http.ResponseWriter, r *http.Request) {
	serial := strings.TrimSpace(mux.Vars(r)["serial"])
	if serial == "" {
		http.Error(w, "serial number is required", http.StatusBadRequest)
		return
	}
	db := h.DB.WithContext(r.Context())

	var hist models.ProjectorHistory
	if err := db.Preload("Site").First(&hist.Projector, "serial_number = ?", serial).Error; err != nil {
		h.dbError(w, err, "projector")
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		return h.DB.WithContext(ctx).Where("serial_number = ?", serial).
			Order("rma_raised_date desc").Find(&hist.RMAs).Error
	})
	g.Go(func() error {
		return h.DB.WithContext(ctx).Where("serial_number = ?", serial).
			Order("error_date desc").Find(&hist.DTRs).Error
	})
	g.Go(func() error {
		return h.DB.WithContext(ctx).
			Select("id", "report_number", "date", "status", "cinema_name", "screen_number",
				"serial_number", "engineer_name", "replacement_required", "follow_up_required", "created_at").
			Where("serial_number = ?", serial).
			Order("date desc").Find(&hist.Reports).Error
	})
	if err := g.Wait(); err != nil {
		h.dbError(w, err, "projector history")
		return
	}
	hist.UnderWarranty = hist.Projector.UnderWarranty(time.Now())
	for _, rma := range hist.RMAs {
		if rma.IsOpen() {
			hist.OpenRMAs++
		}
	}
	writeJSON(w, http.StatusOK, hist)
}
