package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"p9e.in/ascomp/middleware"
	"p9e.in/ascomp/models"
)

var rmaListing = listing{
	filters: map[string]string{
		"status":         "status",
		"priority":       "priority",
		"warrantyStatus": "warranty_status",
		"siteId":         "site_id",
		"serialNumber":   "serial_number",
	},
	sorts:  []string{"rma_raised_date", "created_at", "rma_number", "status", "priority", "estimated_cost"},
	search: []string{"rma_number", "call_log_number", "site_name", "serial_number", "defective_part_name"},
	sort:   "rma_raised_date",
}

func validateRMA(rma *models.RMA) error {
	if strings.TrimSpace(rma.RMANumber) == "" {
		return errors.New("rmaNumber is required")
	}
	if rma.Status != "" && !oneOf(rma.Status, models.RMAStatuses) {
		return fmt.Errorf("unknown status %q", rma.Status)
	}
	if rma.Priority != "" && !oneOf(rma.Priority, models.Priorities) {
		return fmt.Errorf("unknown priority %q", rma.Priority)
	}
	if rma.WarrantyStatus != "" && !oneOf(rma.WarrantyStatus, models.WarrantyStatuses) {
		return fmt.Errorf("unknown warrantyStatus %q", rma.WarrantyStatus)
	}
	if rma.EstimatedCost.IsNegative() {
		return errors.New("estimatedCost cannot be negative")
	}
	if rma.RMARaisedDate.IsZero() {
		rma.RMARaisedDate = models.JSONTime(time.Now())
	}
	return nil
}

func (h *Handler) ListRMAs(w http.ResponseWriter, r *http.Request) {
	var rmas []models.RMA
	h.list(w, r, &models.RMA{}, &rmas, rmaListing)
}

func (h *Handler) CreateRMA(w http.ResponseWriter, r *http.Request) {
	var rma models.RMA
	if err := json.NewDecoder(r.Body).Decode(&rma); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateRMA(&rma); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rma.ID = uuid.Nil
	rma.CreatedBy = middleware.GetUserID(r)

	if err := h.DB.WithContext(r.Context()).Create(&rma).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "rmaNumber already exists", http.StatusConflict)
			return
		}
		h.Log.Error("create rma failed", zap.Error(err))
		http.Error(w, "failed to save RMA", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, rma)
}

func (h *Handler) GetRMA(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var rma models.RMA
	if err := h.DB.WithContext(r.Context()).First(&rma, "id = ?", id).Error; err != nil {
		h.dbError(w, err, "RMA")
		return
	}
	writeJSON(w, http.StatusOK, rma)
}

func (h *Handler) UpdateRMA(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	db := h.DB.WithContext(r.Context())
	var rma models.RMA
	if err := db.First(&rma, "id = ?", id).Error; err != nil {
		h.dbError(w, err, "RMA")
		return
	}
	createdBy, createdAt := rma.CreatedBy, rma.CreatedAt
	if err := json.NewDecoder(r.Body).Decode(&rma); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	rma.ID, rma.CreatedBy, rma.CreatedAt = id, createdBy, createdAt
	if err := validateRMA(&rma); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := db.Save(&rma).Error; err != nil {
		h.Log.Error("update rma failed", zap.String("rma_id", id.String()), zap.Error(err))
		http.Error(w, "failed to update RMA", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rma)
}

func (h *Handler) DeleteRMA(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, &models.RMA{}, "RMA")
}

// BatchRMAs inserts many RMAs at once. Numbers that already exist are
// skipped; the response reports how many rows were written.
func (h *Handler) BatchRMAs(w http.ResponseWriter, r *http.Request) {
	var batch []models.RMA
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(batch) == 0 {
		http.Error(w, "empty batch", http.StatusBadRequest)
		return
	}
	user := middleware.GetUserID(r)
	for i := range batch {
		if err := validateRMA(&batch[i]); err != nil {
			http.Error(w, fmt.Sprintf("item %d: %v", i, err), http.StatusBadRequest)
			return
		}
		batch[i].ID = uuid.Nil
		batch[i].CreatedBy = user
	}

	res := h.DB.WithContext(r.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rma_number"}},
			DoNothing: true,
		}).
		Create(&batch)
	if res.Error != nil {
		h.Log.Error("batch rma insert failed", zap.Int("items", len(batch)), zap.Error(res.Error))
		http.Error(w, "db error: "+res.Error.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"received": int64(len(batch)),
		"inserted": res.RowsAffected,
	})
}
