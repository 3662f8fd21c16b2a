package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"p9e.in/ascomp/pkg/analytics"
)

// parseFilter reads from, to (YYYY-MM-DD, to is inclusive) and siteId.
func parseFilter(r *http.Request) (analytics.Filter, error) {
	q := r.URL.Query()
	var f analytics.Filter
	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid from date %q", v)
		}
		f.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid to date %q", v)
		}
		f.To = t.AddDate(0, 0, 1)
	}
	if !f.From.IsZero() && !f.To.IsZero() && !f.From.Before(f.To) {
		return f, fmt.Errorf("from must not be after to")
	}
	if v := q.Get("siteId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, fmt.Errorf("invalid siteId %q", v)
		}
		f.SiteID = &id
	}
	return f, nil
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) (*analytics.Dashboard, bool) {
	f, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	d, err := analytics.NewService(h.DB).Dashboard(r.Context(), f)
	if err != nil {
		h.Log.Error("dashboard query failed", zap.Error(err))
		http.Error(w, "failed to build dashboard", http.StatusInternalServerError)
		return nil, false
	}
	return d, true
}

// RMAAnalytics returns the RMA dashboard as JSON.
func (h *Handler) RMAAnalytics(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ExportRMAAnalytics downloads the dashboard as an Excel workbook.
func (h *Handler) ExportRMAAnalytics(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	now := time.Now()
	f, err := analytics.ExportXLSX(d, now)
	if err != nil {
		h.Log.Error("dashboard export failed", zap.Error(err))
		http.Error(w, "Failed to create export", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("rma_analytics_%s.xlsx", now.Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if err := f.Write(w); err != nil {
		h.Log.Error("write xlsx failed", zap.Error(err))
	}
}
