package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	_ "p9e.in/ascomp/docs"
	"p9e.in/ascomp/handlers"
	"p9e.in/ascomp/middleware"
	"p9e.in/ascomp/pkg/storage"
	"p9e.in/ascomp/utils"
)

// idPattern keeps literal sub-paths such as /sites/nearby from matching {id}.
const idPattern = "{id:[0-9a-fA-F-]{36}}"

// Deps is what the router needs to build handlers.
type Deps struct {
	Handler   *handlers.Handler
	Log       *zap.Logger
	JWTSecret []byte
	UploadDir string // served at /uploads/ when storage is local
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(d Deps) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(d.Log))

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/healthz", healthz).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/swagger/doc.json", swaggerDoc).Methods("GET")
	if d.UploadDir != "" {
		r.PathPrefix(storage.LocalURLPrefix).Handler(
			http.StripPrefix(storage.LocalURLPrefix, http.FileServer(http.Dir(d.UploadDir))),
		)
	}

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware(d.JWTSecret))

	api.HandleFunc("/profile", handleProfile).Methods("GET")

	registerReportRoutes(api, d.Handler)
	registerServiceRoutes(api, d.Handler)
	registerAssetRoutes(api, d.Handler)
	registerAnalyticsRoutes(api, d.Handler)
	registerFileRoutes(api, d.Handler)

	return middleware.CORS(r)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func swaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, "api docs unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

// handleProfile returns the caller's identity and effective permissions.
func handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"userId":      claims.UserID,
		"name":        claims.Name,
		"role":        claims.Role,
		"permissions": utils.RolePermissions(claims.Role),
	})
}

func guard(perm string, fn http.HandlerFunc) http.Handler {
	return middleware.RequirePermission(perm, fn)
}

// registerReportRoutes registers the ASCOMP checklist endpoints. Literal
// paths are registered before the {id} routes.
func registerReportRoutes(api *mux.Router, h *handlers.Handler) {
	const base = "/ascomp-reports"

	api.Handle(base+"/tokens", guard("report:read", h.ListTokens)).Methods("GET")
	api.Handle(base+"/import/template", guard("report:read", h.ImportTemplate)).Methods("GET")
	api.Handle(base+"/import", middleware.RequireRole(
		[]string{utils.RoleAdmin, utils.RoleManager},
		http.HandlerFunc(h.ImportASCOMPReports))).Methods("POST")

	api.Handle(base, guard("report:read", h.ListASCOMPReports)).Methods("GET")
	api.Handle(base, guard("report:write", h.CreateASCOMPReport)).Methods("POST")
	api.Handle(base+"/"+idPattern, guard("report:read", h.GetASCOMPReport)).Methods("GET")
	api.Handle(base+"/"+idPattern, guard("report:delete", h.DeleteASCOMPReport)).Methods("DELETE")
	api.Handle(base+"/"+idPattern+"/pdf", guard("report:read", h.ASCOMPReportPDF)).Methods("GET")
	api.Handle(base+"/"+idPattern+"/docx", guard("report:read", h.ASCOMPReportDocx)).Methods("POST")
}

func registerServiceRoutes(api *mux.Router, h *handlers.Handler) {
	registerCRUDRoutes(api, "/rmas", "rma", crudHandlers{
		getAll: h.ListRMAs,
		create: h.CreateRMA,
		getOne: h.GetRMA,
		update: h.UpdateRMA,
		delete: h.DeleteRMA,
		batch:  h.BatchRMAs,
	})

	registerCRUDRoutes(api, "/dtrs", "dtr", crudHandlers{
		getAll: h.ListDTRs,
		create: h.CreateDTR,
		getOne: h.GetDTR,
		update: h.UpdateDTR,
		delete: h.DeleteDTR,
	})
	api.Handle("/dtrs/"+idPattern+"/shift-to-rma", guard("rma:write", h.ShiftDTRToRMA)).Methods("POST")
}

func registerAssetRoutes(api *mux.Router, h *handlers.Handler) {
	api.Handle("/sites/nearby", guard("site:read", h.NearbySites)).Methods("GET")
	api.Handle("/sites/in-region", guard("site:read", h.SitesInRegion)).Methods("POST")
	registerCRUDRoutes(api, "/sites", "site", crudHandlers{
		getAll: h.ListSites,
		create: h.CreateSite,
		getOne: h.GetSite,
		update: h.UpdateSite,
		delete: h.DeleteSite,
	})

	registerCRUDRoutes(api, "/projectors", "projector", crudHandlers{
		getAll: h.ListProjectors,
		create: h.CreateProjector,
		getOne: h.GetProjector,
		update: h.UpdateProjector,
		delete: h.DeleteProjector,
	})
	api.Handle("/projectors/{serial}/history", guard("projector:read", h.ProjectorHistory)).Methods("GET")
}

func registerAnalyticsRoutes(api *mux.Router, h *handlers.Handler) {
	api.Handle("/analytics/rma", guard("analytics:read", h.RMAAnalytics)).Methods("GET")
	api.Handle("/analytics/rma/export", guard("analytics:read", h.ExportRMAAnalytics)).Methods("GET")
}

func registerFileRoutes(api *mux.Router, h *handlers.Handler) {
	api.Handle("/files/upload", guard("file:write", h.UploadFile)).Methods("POST")
}

// crudHandlers holds handlers for a CRUD resource
type crudHandlers struct {
	getAll func(http.ResponseWriter, *http.Request)
	create func(http.ResponseWriter, *http.Request)
	getOne func(http.ResponseWriter, *http.Request)
	update func(http.ResponseWriter, *http.Request)
	delete func(http.ResponseWriter, *http.Request)
	batch  func(http.ResponseWriter, *http.Request)
}

// registerCRUDRoutes registers standard CRUD routes for a resource
func registerCRUDRoutes(router *mux.Router, path string, resource string, h crudHandlers) {
	readPerm := resource + ":read"
	writePerm := resource + ":write"
	deletePerm := resource + ":delete"

	// POST batch
	if h.batch != nil {
		router.Handle(path+"/batch", guard(writePerm, h.batch)).Methods("POST")
	}

	// GET all
	router.Handle(path, guard(readPerm, h.getAll)).Methods("GET")

	// POST create
	router.Handle(path, guard(writePerm, h.create)).Methods("POST")

	// GET one by ID
	router.Handle(path+"/"+idPattern, guard(readPerm, h.getOne)).Methods("GET")

	// PUT update
	router.Handle(path+"/"+idPattern, guard(writePerm, h.update)).Methods("PUT")

	// DELETE
	router.Handle(path+"/"+idPattern, guard(deletePerm, h.delete)).Methods("DELETE")
}
