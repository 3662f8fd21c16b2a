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

	"p9e.in/ascomp/middleware"
	"p9e.in/ascomp/models"
)

var dtrListing = listing{
	filters: map[string]string{
		"callStatus":   "call_status",
		"caseSeverity": "case_severity",
		"siteId":       "site_id",
		"serialNumber": "serial_number",
	},
	sorts:  []string{"error_date", "created_at", "case_id", "call_status"},
	search: []string{"case_id", "site_name", "serial_number", "problem_name"},
	sort:   "error_date",
}

// errAlreadyShifted is returned when a DTR already has an RMA.
var errAlreadyShifted = errors.New("dtr already shifted to RMA")

func validateDTR(d *models.DTR) error {
	if strings.TrimSpace(d.CaseID) == "" {
		return errors.New("caseId is required")
	}
	if d.CallStatus != "" && !oneOf(d.CallStatus, models.DTRStatuses) {
		return fmt.Errorf("unknown callStatus %q", d.CallStatus)
	}
	if d.CaseSeverity != "" && !oneOf(d.CaseSeverity, models.Priorities) {
		return fmt.Errorf("unknown caseSeverity %q", d.CaseSeverity)
	}
	if d.ErrorDate.IsZero() {
		d.ErrorDate = models.JSONTime(time.Now())
	}
	return nil
}

func (h *Handler) ListDTRs(w http.ResponseWriter, r *http.Request) {
	var dtrs []models.DTR
	h.list(w, r, &models.DTR{}, &dtrs, dtrListing)
}

func (h *Handler) CreateDTR(w http.ResponseWriter, r *http.Request) {
	var d models.DTR
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateDTR(&d); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d.ID = uuid.Nil
	d.RMAID = nil
	if d.OpenedBy == "" {
		if c := middleware.GetClaims(r); c != nil {
			d.OpenedBy = c.Name
		}
	}
	if err := h.DB.WithContext(r.Context()).Create(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "caseId already exists", http.StatusConflict)
			return
		}
		h.Log.Error("create dtr failed", zap.Error(err))
		http.Error(w, "failed to save DTR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *Handler) GetDTR(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var d models.DTR
	if err := h.DB.WithContext(r.Context()).First(&d, "id = ?", id).Error; err != nil {
		h.dbError(w, err, "DTR")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) UpdateDTR(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	db := h.DB.WithContext(r.Context())
	var d models.DTR
	if err := db.First(&d, "id = ?", id).Error; err != nil {
		h.dbError(w, err, "DTR")
		return
	}
	rmaID, createdAt := d.RMAID, d.CreatedAt
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	d.ID, d.RMAID, d.CreatedAt = id, rmaID, createdAt
	if err := validateDTR(&d); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if d.CallStatus == models.DTRClosed && d.ClosedBy == "" {
		if c := middleware.GetClaims(r); c != nil {
			d.ClosedBy = c.Name
		}
	}
	if err := db.Save(&d).Error; err != nil {
		h.Log.Error("update dtr failed", zap.String("dtr_id", id.String()), zap.Error(err))
		http.Error(w, "failed to update DTR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) DeleteDTR(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, &models.DTR{}, "DTR")
}

// shiftRequest is the optional body of ShiftDTRToRMA.
type shiftRequest struct {
	RMANumber string `json:"rmaNumber"`
}

// ShiftDTRToRMA opens an RMA from a trouble report and marks the report
// "Shifted to RMA", both in one transaction.
func (h *Handler) ShiftDTRToRMA(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req shiftRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	var rma models.RMA
	err := h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		var d models.DTR
		if err := tx.First(&d, "id = ?", id).Error; err != nil {
			return err
		}
		if d.RMAID != nil || d.CallStatus == models.DTRShiftedToRMA {
			return errAlreadyShifted
		}

		now := time.Now()
		number := req.RMANumber
		if number == "" {
			number = "RMA-" + now.Format("20060102") + "-" + strings.ToUpper(d.ID.String()[:8])
		}
		rma = d.ToRMA(number, now)
		rma.CreatedBy = middleware.GetUserID(r)
		if err := tx.Create(&rma).Error; err != nil {
			return fmt.Errorf("create rma: %w", err)
		}
		return tx.Model(&models.DTR{}).Where("id = ?", d.ID).Updates(map[string]interface{}{
			"call_status": models.DTRShiftedToRMA,
			"rma_id":      rma.ID,
		}).Error
	})
	switch {
	case err == nil:
		h.Log.Info("dtr shifted to rma", zap.String("dtr_id", id.String()), zap.String("rma_number", rma.RMANumber))
		writeJSON(w, http.StatusCreated, rma)
	case errors.Is(err, errAlreadyShifted):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "DTR not found", http.StatusNotFound)
	default:
		h.Log.Error("shift dtr failed", zap.String("dtr_id", id.String()), zap.Error(err))
		http.Error(w, "failed to shift DTR", http.StatusInternalServerError)
	}
}
