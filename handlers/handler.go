package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"p9e.in/ascomp/models"
	"p9e.in/ascomp/pkg/render"
	"p9e.in/ascomp/pkg/storage"
)

// maxUpload bounds multipart bodies (imports, templates, attachments).
const maxUpload = 32 << 20

// Options configures the PDF side of the report handlers.
type Options struct {
	Renderer  string
	ChromeBin string
	Timeout   time.Duration
}

// Handler serves every /api/v1 resource.
type Handler struct {
	DB    *gorm.DB
	Log   *zap.Logger
	Store storage.Store
	Opts  Options

	// renderer is swapped in tests.
	renderer func(name string) render.Renderer
}

func New(db *gorm.DB, log *zap.Logger, store storage.Store, opts Options) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{DB: db, Log: log, Store: store, Opts: opts}
	h.renderer = func(name string) render.Renderer {
		if name == "" {
			name = h.Opts.Renderer
		}
		return render.New(name, h.Opts.ChromeBin, h.Opts.Timeout, h.Log)
	}
	return h
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// dbError writes the status for a failed query. Missing rows are 404.
func (h *Handler) dbError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, what+" not found", http.StatusNotFound)
		return
	}
	h.Log.Error("database error", zap.String("resource", what), zap.Error(err))
	http.Error(w, "failed to load "+what, http.StatusInternalServerError)
}

// listing describes how one resource is listed.
type listing struct {
	filters map[string]string // query key -> column
	sorts   []string
	search  []string
	sort    string
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, model, dest interface{}, l listing) {
	keys := make([]string, 0, len(l.filters))
	for k := range l.filters {
		keys = append(keys, k)
	}
	params, err := models.ParseListParams(r, keys...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := params.Validate(l.sorts...); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := params.Apply(h.DB.WithContext(r.Context()).Model(model), l.filters, l.search...)
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		h.dbError(w, err, "records")
		return
	}
	if err := params.Paginate(q, l.sort).Find(dest).Error; err != nil {
		h.dbError(w, err, "records")
		return
	}
	writeJSON(w, http.StatusOK, models.NewListResponse(dest, params, total))
}

func (h *Handler) deleteByID(w http.ResponseWriter, r *http.Request, model interface{}, what string) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res := h.DB.WithContext(r.Context()).Delete(model, "id = ?", id)
	if res.Error != nil {
		h.Log.Error("delete failed", zap.String("resource", what), zap.Error(res.Error))
		http.Error(w, "failed to delete record", http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

// gormAppend appends v to a Postgres text[] column.
func gormAppend(column, v string) interface{} {
	return gorm.Expr("array_append(COALESCE("+column+", '{}'), ?)", v)
}
