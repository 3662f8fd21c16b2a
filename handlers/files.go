package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"p9e.in/ascomp/models"
	"p9e.in/ascomp/utils"
)

// UploadFile stores the multipart field "file" and returns its URL. With
// ?rmaId= the URL is also appended to that RMA's attachments.
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		http.Error(w, "file storage is not configured", http.StatusServiceUnavailable)
		return
	}
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Timestamp prefix avoids collisions between same-named uploads.
	ext := filepath.Ext(header.Filename)
	base := utils.SanitizeFilename(strings.TrimSuffix(header.Filename, ext))
	filename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102-150405"), base, strings.ToLower(ext))
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.Store.Put(r.Context(), "attachments/"+filename, contentType, data)
	if err != nil {
		h.Log.Error("upload failed", zap.String("file", filename), zap.String("driver", h.Store.Driver()), zap.Error(err))
		http.Error(w, "failed to save file", http.StatusInternalServerError)
		return
	}

	if rmaID := r.URL.Query().Get("rmaId"); rmaID != "" {
		res := h.DB.WithContext(r.Context()).Model(&models.RMA{}).Where("id = ?", rmaID).
			Update("attachment_urls", gormAppend("attachment_urls", url))
		if res.Error != nil {
			h.Log.Error("attach upload to rma failed", zap.String("rma_id", rmaID), zap.Error(res.Error))
			http.Error(w, "file saved but could not be attached", http.StatusInternalServerError)
			return
		}
		if res.RowsAffected == 0 {
			http.Error(w, "RMA not found", http.StatusNotFound)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"url":      url,
		"filename": filename,
		"driver":   h.Store.Driver(),
	})
}
