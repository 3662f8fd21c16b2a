package handlers

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"p9e.in/ascomp/middleware"
	"p9e.in/ascomp/pkg/csvmap"
	"p9e.in/ascomp/pkg/importer"
)

// ImportTemplate downloads an empty CSV with every importable header.
func (h *Handler) ImportTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ascomp_import_template.csv"`)
	cw := csv.NewWriter(w)
	cw.Write(csvmap.Header())
	cw.Flush()
}

// ImportASCOMPReports loads a CSV or XLSX sheet (multipart field "file").
// With ?dryRun=true the rows are validated and mapped but nothing is saved.
func (h *Handler) ImportASCOMPReports(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := importer.ReadRows(header.Filename, file)
	if err != nil {
		if errors.Is(err, importer.ErrUnsupported) || errors.Is(err, importer.ErrEmptyFile) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, err := importer.Import(r.Context(), rows, importer.Options{CreatedBy: middleware.GetUserID(r)})
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}

	if dry, _ := strconv.ParseBool(r.URL.Query().Get("dryRun")); dry {
		writeJSON(w, http.StatusOK, res)
		return
	}
	if err := importer.NewService(h.DB, h.Log).Persist(r.Context(), res); err != nil {
		h.Log.Error("import persist failed", zap.String("file", header.Filename), zap.Error(err))
		http.Error(w, "failed to save imported reports", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
