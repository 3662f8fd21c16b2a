package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"p9e.in/ascomp/models"
	"p9e.in/ascomp/utils"
)

// defaultRadiusKm is used by the nearby search when radiusKm is absent.
const defaultRadiusKm = 25

var siteListing = listing{
	filters: map[string]string{"city": "city", "region": "region", "state": "state"},
	sorts:   []string{"name", "code", "city", "created_at"},
	search:  []string{"name", "code", "city", "address"},
	sort:    "name",
}

func validateSite(s *models.Site) error {
	if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Code) == "" {
		return errors.New("name and code are required")
	}
	if (s.Latitude == nil) != (s.Longitude == nil) {
		return errors.New("latitude and longitude must be set together")
	}
	if s.Latitude != nil {
		return utils.ValidateCoordinate(utils.Coordinate{Lat: *s.Latitude, Lng: *s.Longitude})
	}
	return nil
}

func (h *Handler) ListSites(w http.ResponseWriter, r *http.Request) {
	var sites []models.Site
	h.list(w, r, &models.Site{}, &sites, siteListing)
}

func (h *Handler) CreateSite(w http.ResponseWriter, r *http.Request) {
	var s models.Site
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateSite(&s); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.ID = uuid.Nil
	s.Projectors = nil
	if err := h.DB.WithContext(r.Context()).Create(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "site code already exists", http.StatusConflict)
			return
		}
		h.Log.Error("create site failed", zap.Error(err))
		http.Error(w, "failed to save site", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// GetSite returns the site with its projectors.
func (h *Handler) GetSite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var s models.Site
	if err := h.DB.WithContext(r.Context()).Preload("Projectors").First(&s, "id = ?", id).Error; err != nil {
		h.dbError(w, err, "site")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) UpdateSite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	db := h.DB.WithContext(r.Context())
	var s models.Site
	if err := db.First(&s, "id = ?", id).Error; err != nil {
		h.dbError(w, err, "site")
		return
	}
	createdAt := s.CreatedAt
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.ID, s.CreatedAt, s.Projectors = id, createdAt, nil
	if err := validateSite(&s); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := db.Save(&s).Error; err != nil {
		h.Log.Error("update site failed", zap.String("site_id", id.String()), zap.Error(err))
		http.Error(w, "failed to update site", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) DeleteSite(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, &models.Site{}, "site")
}

// NearbySite is a site with its distance from the search point.
type NearbySite struct {
	models.Site
	DistanceKm float64 `json:"distanceKm"`
}

func queryFloat(r *http.Request, key string) (float64, bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, true, err
}

// NearbySites lists active sites within radiusKm of (lat, lng), closest
// first.
func (h *Handler) NearbySites(w http.ResponseWriter, r *http.Request) {
	lat, okLat, errLat := queryFloat(r, "lat")
	lng, okLng, errLng := queryFloat(r, "lng")
	if !okLat || !okLng || errLat != nil || errLng != nil {
		http.Error(w, "lat and lng are required numbers", http.StatusBadRequest)
		return
	}
	center := utils.Coordinate{Lat: lat, Lng: lng}
	if err := utils.ValidateCoordinate(center); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	radius, ok, err := queryFloat(r, "radiusKm")
	if err != nil || (ok && radius <= 0) {
		http.Error(w, "radiusKm must be a positive number", http.StatusBadRequest)
		return
	}
	if !ok {
		radius = defaultRadiusKm
	}

	var sites []models.Site
	if err := h.DB.WithContext(r.Context()).
		Where("is_active = ? AND latitude IS NOT NULL AND longitude IS NOT NULL", true).
		Find(&sites).Error; err != nil {
		h.dbError(w, err, "sites")
		return
	}

	out := []NearbySite{}
	for _, s := range sites {
		pt, ok := s.Point()
		if !ok {
			continue
		}
		p := utils.Coordinate{Lat: pt.Lat(), Lng: pt.Lon()}
		if !utils.WithinRadius(center, p, radius) {
			continue
		}
		out = append(out, NearbySite{Site: s, DistanceKm: utils.DistanceKm(center, p)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	writeJSON(w, http.StatusOK, out)
}

// SitesInRegion returns active sites inside the posted polygon (a list of
// {lat, lng} vertices, at least three).
func (h *Handler) SitesInRegion(w http.ResponseWriter, r *http.Request) {
	var ring []utils.Coordinate
	if err := json.NewDecoder(r.Body).Decode(&ring); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(ring) < 3 {
		http.Error(w, "region needs at least three points", http.StatusBadRequest)
		return
	}
	for _, c := range ring {
		if err := utils.ValidateCoordinate(c); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	var sites []models.Site
	if err := h.DB.WithContext(r.Context()).
		Where("is_active = ? AND latitude IS NOT NULL AND longitude IS NOT NULL", true).
		Find(&sites).Error; err != nil {
		h.dbError(w, err, "sites")
		return
	}
	out := []models.Site{}
	for _, s := range sites {
		if pt, ok := s.Point(); ok && utils.InRegion(utils.Coordinate{Lat: pt.Lat(), Lng: pt.Lon()}, ring) {
			out = append(out, s)
		}
	}
	writeJSON(w, http.StatusOK, out)
}
