package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"p9e.in/ascomp/middleware"
	"p9e.in/ascomp/models"
	"p9e.in/ascomp/pkg/catalog"
	"p9e.in/ascomp/pkg/docx"
	"p9e.in/ascomp/pkg/formstate"
	"p9e.in/ascomp/pkg/render"
)

var reportListing = listing{
	filters: map[string]string{
		"status":       "status",
		"serialNumber": "serial_number",
		"siteId":       "site_id",
	},
	sorts:  []string{"date", "created_at", "cinema_name", "report_number"},
	search: []string{"report_number", "cinema_name", "engineer_name", "serial_number"},
	sort:   "date",
}

// ListASCOMPReports godoc
// @Summary List ASCOMP reports
// @Tags ascomp-reports
// @Produce json
// @Router /ascomp-reports [get]
func (h *Handler) ListASCOMPReports(w http.ResponseWriter, r *http.Request) {
	var reports []models.ASCOMPReport
	h.list(w, r, &models.ASCOMPReport{}, &reports, reportListing)
}

// CreateASCOMPReport stores a submitted checklist. The body is the form
// state, in either the named-object or the positional array shape.
func (h *Handler) CreateASCOMPReport(w http.ResponseWriter, r *http.Request) {
	var form map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	report, err := formstate.Decode(form)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(report.CinemaName) == "" {
		http.Error(w, "cinemaName is required", http.StatusBadRequest)
		return
	}
	if report.Date.IsZero() {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}
	if bad := invalidResults(&report); len(bad) > 0 {
		http.Error(w, "invalid YES/NO/OK value at "+strings.Join(bad, ", "), http.StatusBadRequest)
		return
	}

	report.ID = uuid.Nil
	report.ImportFingerprint = nil
	report.RawImport = nil
	if c := middleware.GetClaims(r); c != nil {
		report.CreatedBy = c.UserID
		if report.Engineer.Name == "" {
			report.Engineer.Name = c.Name
		}
	}
	if report.ReportNumber == "" {
		report.ReportNumber = "ASCOMP-" + report.Date.Time().Format("20060102") + "-" + strings.ToUpper(uuid.NewString()[:8])
	}
	if report.Status == "" {
		report.Status = models.ReportSubmitted
	}

	if err := h.DB.WithContext(r.Context()).Create(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "report number already exists", http.StatusConflict)
			return
		}
		h.Log.Error("create report failed", zap.Error(err))
		http.Error(w, "failed to save report", http.StatusInternalServerError)
		return
	}
	h.Log.Info("ascomp report created",
		zap.String("report_number", report.ReportNumber),
		zap.String("cinema", report.CinemaName))
	writeJSON(w, http.StatusCreated, report)
}

// invalidResults lists checklist paths whose yesNoOk is not an accepted
// value.
func invalidResults(report *models.ASCOMPReport) []string {
	data, err := catalog.ToMap(report)
	if err != nil {
		return nil
	}
	var bad []string
	for _, s := range catalog.Sections() {
		for _, it := range s.Items {
			path := s.ResultPath(it)
			if !models.ValidResult(catalog.Resolve(data, path, "")) {
				bad = append(bad, path)
			}
		}
	}
	return bad
}

func (h *Handler) loadReport(w http.ResponseWriter, r *http.Request) (*models.ASCOMPReport, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return nil, false
	}
	var report models.ASCOMPReport
	if err := h.DB.WithContext(r.Context()).First(&report, "id = ?", id).Error; err != nil {
		h.dbError(w, err, "report")
		return nil, false
	}
	return &report, true
}

func (h *Handler) GetASCOMPReport(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) DeleteASCOMPReport(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, &models.ASCOMPReport{}, "report")
}

// ASCOMPReportPDF renders the stored report. ?renderer= picks direct or
// browser; ?archive=true also writes the PDF to storage and returns its URL
// in X-Archive-URL.
func (h *Handler) ASCOMPReportPDF(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	name := q.Get("renderer")
	if name != "" && name != "direct" && name != "browser" {
		http.Error(w, "renderer must be direct or browser", http.StatusBadRequest)
		return
	}

	pdf, err := h.renderer(name).Render(r.Context(), report)
	if err != nil {
		http.Error(w, "failed to generate PDF", http.StatusInternalServerError)
		return
	}
	filename := render.Filename(report)

	if archive, _ := strconv.ParseBool(q.Get("archive")); archive && h.Store != nil {
		url, err := h.Store.Put(r.Context(), "reports/"+filename, "application/pdf", pdf)
		if err != nil {
			h.Log.Error("archive pdf failed", zap.String("file", filename), zap.Error(err))
			http.Error(w, "failed to archive PDF", http.StatusBadGateway)
			return
		}
		w.Header().Set("X-Archive-URL", url)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.Write(pdf)
}

// ASCOMPReportDocx fills an uploaded Word template (multipart field
// "template") with the report's token values.
func (h *Handler) ASCOMPReportDocx(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("template")
	if err != nil {
		http.Error(w, "template file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		http.Error(w, "failed to read template", http.StatusBadRequest)
		return
	}
	out, err := docx.Fill(buf.Bytes(), catalog.Values(report))
	if err != nil {
		if errors.Is(err, docx.ErrTemplate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Log.Error("fill docx failed", zap.Error(err))
		http.Error(w, "failed to fill template", http.StatusInternalServerError)
		return
	}

	filename := strings.TrimSuffix(render.Filename(report), ".pdf") + ".docx"
	w.Header().Set("Content-Type", docx.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(out)
}

// tokenView is one catalog entry as served to template authors.
type tokenView struct {
	Token    string `json:"token"`
	DataPath string `json:"dataPath"`
	Default  string `json:"default"`
}

// ListTokens returns every placeholder a Word template may use.
func (h *Handler) ListTokens(w http.ResponseWriter, r *http.Request) {
	tokens := catalog.Tokens()
	out := make([]tokenView, len(tokens))
	for i, t := range tokens {
		out[i] = tokenView{Token: t.Bracketed(), DataPath: t.DataPath, Default: t.Default}
	}
	writeJSON(w, http.StatusOK, out)
}
