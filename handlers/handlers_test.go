package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jknair0/beforeeach"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"p9e.in/ascomp/middleware"
	"p9e.in/ascomp/pkg/storage"
)

var (
	sqlDB *sql.DB
	mock  sqlmock.Sqlmock
	h     *Handler
)

func setUp() {
	var err error
	sqlDB, mock, err = sqlmock.New()
	if err != nil {
		panic(err)
	}
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}
	h = New(gdb, zap.NewNop(), nil, Options{Renderer: "direct"})
}

func tearDown() {
	sqlDB.Close()
}

var it = beforeeach.Create(setUp, tearDown)

func asUser(req *http.Request, role string) *http.Request {
	return req.WithContext(middleware.WithClaims(req.Context(), &middleware.Claims{
		UserID: "u-7", Name: "Ravi Kumar", Role: role,
	}))
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return asUser(req, "fse")
}

func multipartRequest(t *testing.T, target, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return asUser(req, "fse")
}

func withID(req *http.Request, key, id string) *http.Request {
	return mux.SetURLVars(req, map[string]string{key: id})
}

func TestCreateASCOMPReportFromPositionalForm(t *testing.T) {
	it(func() {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "ascomp_reports"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		form := map[string]interface{}{
			"cinemaName": "PVR Select City",
			"date":       "2024-07-01",
			"inspectionSections": map[string]interface{}{
				"opticals": []interface{}{
					map[string]interface{}{"status": "Cleaned", "result": "OK"},
				},
			},
		}
		rr := httptest.NewRecorder()
		h.CreateASCOMPReport(rr, jsonRequest(http.MethodPost, "/api/v1/ascomp-reports", form))

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Ravi Kumar", got["engineer"].(map[string]interface{})["name"])
		assert.Equal(t, "u-7", got["createdBy"])
		assert.Equal(t, "Cleaned", got["opticals"].(map[string]interface{})["reflector"].(map[string]interface{})["status"])
		assert.True(t, strings.HasPrefix(got["reportNumber"].(string), "ASCOMP-20240701-"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateASCOMPReportValidation(t *testing.T) {
	it(func() {
		for name, body := range map[string]interface{}{
			"no cinema": map[string]interface{}{"date": "2024-07-01"},
			"no date":   map[string]interface{}{"cinemaName": "X"},
			"bad result": map[string]interface{}{
				"cinemaName": "X", "date": "2024-07-01",
				"coolant": map[string]interface{}{"white": map[string]interface{}{"status": "ok", "yesNoOk": "MAYBE"}},
			},
		} {
			rr := httptest.NewRecorder()
			h.CreateASCOMPReport(rr, jsonRequest(http.MethodPost, "/", body))
			assert.Equal(t, http.StatusBadRequest, rr.Code, name)
		}

		rr := httptest.NewRecorder()
		h.CreateASCOMPReport(rr, asUser(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")), "fse"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetASCOMPReportNotFound(t *testing.T) {
	it(func() {
		mock.ExpectQuery(`SELECT \* FROM "ascomp_reports"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		rr := httptest.NewRecorder()
		req := withID(jsonRequest(http.MethodGet, "/", nil), "id", uuid.NewString())
		h.GetASCOMPReport(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)

		rr = httptest.NewRecorder()
		h.GetASCOMPReport(rr, withID(jsonRequest(http.MethodGet, "/", nil), "id", "not-a-uuid"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func reportRows(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "report_number", "date", "status", "cinema_name", "engineer_name"}).
		AddRow(id.String(), "ASC-9", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), "Submitted", "Cinépolis: Andheri", "R. Kumar")
}

func TestASCOMPReportPDFArchives(t *testing.T) {
	it(func() {
		dir := t.TempDir()
		store, err := storage.NewLocal(dir)
		require.NoError(t, err)
		h.Store = store

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "ascomp_reports"`).WillReturnRows(reportRows(id))

		rr := httptest.NewRecorder()
		req := withID(jsonRequest(http.MethodGet, "/?archive=true", nil), "id", id.String())
		h.ASCOMPReportPDF(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "ASCOMP_ASC-9_Cinepolis__Andheri.pdf")
		assert.Equal(t, "/uploads/reports/ASCOMP_ASC-9_Cinepolis__Andheri.pdf", rr.Header().Get("X-Archive-URL"))
		assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))
	})
}

func TestASCOMPReportPDFRejectsUnknownRenderer(t *testing.T) {
	it(func() {
		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "ascomp_reports"`).WillReturnRows(reportRows(id))

		rr := httptest.NewRecorder()
		h.ASCOMPReportPDF(rr, withID(jsonRequest(http.MethodGet, "/?renderer=word", nil), "id", id.String()))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListTokensAndImportTemplate(t *testing.T) {
	it(func() {
		rr := httptest.NewRecorder()
		h.ListTokens(rr, jsonRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		var tokens []tokenView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tokens))
		require.NotEmpty(t, tokens)
		assert.Equal(t, "[", tokens[0].Token[:1])

		rr = httptest.NewRecorder()
		h.ImportTemplate(rr, jsonRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, strings.SplitN(rr.Body.String(), "\n", 2)[0], "engineer_name")
	})
}

func TestImportDryRun(t *testing.T) {
	it(func() {
		csv := "cinemaName,engineer_name,date\nPVR Orion,S. Iyer,2024-02-02\n,nobody,2024-02-03\n"
		req := multipartRequest(t, "/?dryRun=true", "file", "visits.csv", []byte(csv))

		rr := httptest.NewRecorder()
		h.ImportASCOMPReports(rr, req)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var res struct {
			Total  int      `json:"total"`
			Valid  int      `json:"valid"`
			Errors []string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, 1, res.Valid)
		assert.Equal(t, []string{"Row 3: Cinema Name is required"}, res.Errors)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestImportRejectsUnknownFileType(t *testing.T) {
	it(func() {
		rr := httptest.NewRecorder()
		h.ImportASCOMPReports(rr, multipartRequest(t, "/", "file", "visits.pdf", []byte("%PDF")))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListRMAs(t *testing.T) {
	it(func() {
		mock.ExpectQuery(`SELECT count\(\*\) FROM "rmas"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT \* FROM "rmas"`).WillReturnRows(
			sqlmock.NewRows([]string{"id", "rma_number", "status"}).AddRow(uuid.NewString(), "RMA-1", "Under Review"))

		rr := httptest.NewRecorder()
		h.ListRMAs(rr, jsonRequest(http.MethodGet, "/?status=Under%20Review&limit=10", nil))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var page struct {
			Total int64 `json:"total"`
			Data  []struct {
				RMANumber string `json:"rmaNumber"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
		assert.EqualValues(t, 1, page.Total)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "RMA-1", page.Data[0].RMANumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListRMAsBadParams(t *testing.T) {
	it(func() {
		for _, q := range []string{"?limit=500", "?page=0", "?sort=password", "?order=up", "?page=x"} {
			rr := httptest.NewRecorder()
			h.ListRMAs(rr, jsonRequest(http.MethodGet, "/"+q, nil))
			assert.Equal(t, http.StatusBadRequest, rr.Code, q)
		}
	})
}

func TestCreateRMAValidation(t *testing.T) {
	it(func() {
		tests := []struct {
			name string
			body map[string]interface{}
		}{
			{"no number", map[string]interface{}{"status": "Completed"}},
			{"bad status", map[string]interface{}{"rmaNumber": "R1", "status": "Lost"}},
			{"bad priority", map[string]interface{}{"rmaNumber": "R1", "priority": "Urgent"}},
			{"negative cost", map[string]interface{}{"rmaNumber": "R1", "estimatedCost": "-5"}},
		}
		for _, tt := range tests {
			rr := httptest.NewRecorder()
			h.CreateRMA(rr, jsonRequest(http.MethodPost, "/", tt.body))
			assert.Equal(t, http.StatusBadRequest, rr.Code, tt.name)
		}
	})
}

func TestCreateRMA(t *testing.T) {
	it(func() {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "rmas"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rr := httptest.NewRecorder()
		h.CreateRMA(rr, jsonRequest(http.MethodPost, "/", map[string]interface{}{
			"rmaNumber": "RMA-2024-001", "siteName": "INOX Nariman Point", "estimatedCost": "1250.50",
		}))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Under Review", got["status"])
		assert.Equal(t, "Medium", got["priority"])
		assert.Equal(t, "u-7", got["createdBy"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteRMANotFound(t *testing.T) {
	it(func() {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "rmas" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		rr := httptest.NewRecorder()
		h.DeleteRMA(rr, withID(jsonRequest(http.MethodDelete, "/", nil), "id", uuid.NewString()))
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func dtrRows(id uuid.UUID, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "case_id", "error_date", "serial_number", "problem_name", "call_status", "case_severity"}).
		AddRow(id.String(), "DTR-17", time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), "CP2220-0099", "Lamp fails to strike", status, "High")
}

func TestShiftDTRToRMA(t *testing.T) {
	it(func() {
		id := uuid.New()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "dtrs"`).WillReturnRows(dtrRows(id, "Open"))
		mock.ExpectExec(`INSERT INTO "rmas"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "dtrs" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rr := httptest.NewRecorder()
		h.ShiftDTRToRMA(rr, withID(jsonRequest(http.MethodPost, "/", map[string]string{"rmaNumber": "RMA-88"}), "id", id.String()))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "RMA-88", got["rmaNumber"])
		assert.Equal(t, "DTR-17", got["callLogNumber"])
		assert.Equal(t, "High", got["priority"])
		assert.Equal(t, id.String(), got["dtrId"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShiftDTRToRMAAlreadyShifted(t *testing.T) {
	it(func() {
		id := uuid.New()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "dtrs"`).WillReturnRows(dtrRows(id, "Shifted to RMA"))
		mock.ExpectRollback()

		rr := httptest.NewRecorder()
		h.ShiftDTRToRMA(rr, withID(jsonRequest(http.MethodPost, "/", nil), "id", id.String()))
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNearbySites(t *testing.T) {
	it(func() {
		mock.ExpectQuery(`SELECT \* FROM "sites"`).WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "code", "latitude", "longitude", "is_active"}).
				AddRow(uuid.NewString(), "PVR Noida", "PVR_NOIDA", 28.5708, 77.3261, true).
				AddRow(uuid.NewString(), "PVR Plaza", "PVR_PLAZA", 28.6315, 77.2167, true).
				AddRow(uuid.NewString(), "PVR Juhu", "PVR_JUHU", 19.1075, 72.8263, true))

		rr := httptest.NewRecorder()
		h.NearbySites(rr, jsonRequest(http.MethodGet, "/?lat=28.6139&lng=77.2090&radiusKm=30", nil))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var got []NearbySite
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "PVR_PLAZA", got[0].Code)
		assert.Equal(t, "PVR_NOIDA", got[1].Code)
		assert.Less(t, got[0].DistanceKm, got[1].DistanceKm)
	})
}

func TestNearbySitesBadQuery(t *testing.T) {
	it(func() {
		for _, q := range []string{"", "?lat=91&lng=0", "?lat=1&lng=x", "?lat=1&lng=1&radiusKm=-2"} {
			rr := httptest.NewRecorder()
			h.NearbySites(rr, jsonRequest(http.MethodGet, "/"+q, nil))
			assert.Equal(t, http.StatusBadRequest, rr.Code, q)
		}
	})
}

func TestUploadFile(t *testing.T) {
	it(func() {
		store, err := storage.NewLocal(t.TempDir())
		require.NoError(t, err)
		h.Store = store

		rr := httptest.NewRecorder()
		h.UploadFile(rr, multipartRequest(t, "/", "file", "lamp photo.JPG", []byte{0xff, 0xd8, 0xff}))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var got map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.True(t, strings.HasPrefix(got["url"], "/uploads/attachments/"))
		assert.True(t, strings.HasSuffix(got["filename"], "-lamp_photo.jpg"))
		assert.Equal(t, "local", got["driver"])
	})
}

func TestUploadFileWithoutStore(t *testing.T) {
	it(func() {
		rr := httptest.NewRecorder()
		h.UploadFile(rr, multipartRequest(t, "/", "file", "a.txt", []byte("x")))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestAnalyticsBadFilter(t *testing.T) {
	it(func() {
		for _, q := range []string{"?from=yesterday", "?to=2024-13-01", "?from=2024-05-01&to=2024-04-01", "?siteId=42"} {
			rr := httptest.NewRecorder()
			h.RMAAnalytics(rr, jsonRequest(http.MethodGet, "/"+q, nil))
			assert.Equal(t, http.StatusBadRequest, rr.Code, q)
		}
	})
}

func TestParseFilterToIsInclusive(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?from=2024-01-01&to=2024-01-31", nil)
	f, err := parseFilter(req.WithContext(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), f.To)
}
