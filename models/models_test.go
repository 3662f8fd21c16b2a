package models

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONTimeUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2024-03-09T10:11:12Z"`, time.Date(2024, 3, 9, 10, 11, 12, 0, time.UTC)},
		{`"2024-03-09T10:11:12"`, time.Date(2024, 3, 9, 10, 11, 12, 0, time.UTC)},
		{`"2024-03-09"`, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
		{`"09/03/2024"`, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
		{`""`, time.Time{}},
		{`null`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var jt JSONTime
			require.NoError(t, json.Unmarshal([]byte(tt.in), &jt))
			assert.True(t, tt.want.Equal(jt.Time()), "got %v", jt.Time())
		})
	}

	var jt JSONTime
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &jt))
}

func TestJSONTimeScan(t *testing.T) {
	var jt JSONTime
	require.NoError(t, jt.Scan([]byte("2024-01-02T03:04:05Z")))
	assert.Equal(t, 2024, jt.Time().Year())
	require.NoError(t, jt.Scan(nil))
	assert.True(t, jt.IsZero())
	assert.Error(t, jt.Scan(42))
}

func TestSubmittedReportIsImmutable(t *testing.T) {
	r := &ASCOMPReport{Status: ReportSubmitted}
	assert.ErrorIs(t, r.BeforeUpdate(nil), ErrImmutable)

	draft := &ASCOMPReport{Status: ReportDraft}
	assert.NoError(t, draft.BeforeUpdate(nil))
}

func TestBeforeCreateDefaults(t *testing.T) {
	r := &ASCOMPReport{}
	require.NoError(t, r.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, ReportSubmitted, r.Status)

	rma := &RMA{}
	require.NoError(t, rma.BeforeCreate(nil))
	assert.Equal(t, RMAUnderReview, rma.Status)
	assert.Equal(t, PriorityMedium, rma.Priority)
	assert.True(t, rma.IsOpen())

	rma.Status = RMARejected
	assert.False(t, rma.IsOpen())
}

func TestDTRToRMA(t *testing.T) {
	site := uuid.New()
	d := DTR{
		ID:           uuid.New(),
		CaseID:       "DTR-0042",
		ErrorDate:    JSONTime(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		SiteID:       &site,
		SiteName:     "Cinepolis Viviana",
		SerialNumber: "CP4230-118",
		ProblemName:  "IMB not detected",
		ActionTaken:  "Reseated card",
		CaseSeverity: PriorityHigh,
	}
	raised := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	rma := d.ToRMA("RMA-7", raised)

	assert.Equal(t, "RMA-7", rma.RMANumber)
	assert.Equal(t, "DTR-0042", rma.CallLogNumber)
	assert.Equal(t, raised, rma.RMARaisedDate.Time())
	assert.Equal(t, d.ErrorDate, *rma.CustomerErrorDate)
	assert.Equal(t, &site, rma.SiteID)
	assert.Equal(t, "IMB not detected", rma.Symptoms)
	assert.Equal(t, PriorityHigh, rma.Priority)
	require.NotNil(t, rma.DTRID)
	assert.Equal(t, d.ID, *rma.DTRID)
}

func TestProjectorUnderWarranty(t *testing.T) {
	start := JSONTime(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	end := JSONTime(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	p := Projector{WarrantyStart: &start, WarrantyEnd: &end}

	assert.True(t, p.UnderWarranty(time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.UnderWarranty(time.Date(2022, 5, 5, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.UnderWarranty(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)))
	assert.False(t, Projector{}.UnderWarranty(time.Now()))
}

func TestParseListParams(t *testing.T) {
	req := httptest.NewRequest("GET", "/?page=2&limit=50&sort=created_at&order=ASC&search=+pvr+&status=Open&ignored=x", nil)
	p, err := ParseListParams(req, "status")
	require.NoError(t, err)

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 50, p.Limit)
	assert.Equal(t, "asc", p.Order)
	assert.Equal(t, "pvr", p.Search)
	assert.Equal(t, map[string]string{"status": "Open"}, p.Filters)
	assert.NoError(t, p.Validate("created_at"))
	assert.Error(t, p.Validate("name"))

	resp := NewListResponse([]int{}, p, 101)
	assert.Equal(t, 3, resp.TotalPages)
}

func TestListParamsLimits(t *testing.T) {
	for _, q := range []string{"?limit=0", "?limit=101", "?page=0", "?order=sideways"} {
		p, err := ParseListParams(httptest.NewRequest("GET", "/"+q, nil))
		require.NoError(t, err)
		assert.Error(t, p.Validate(), q)
	}
	_, err := ParseListParams(httptest.NewRequest("GET", "/?page=two", nil))
	assert.Error(t, err)
}

func TestSitePoint(t *testing.T) {
	lat, lng := 12.97, 77.59
	p, ok := Site{Latitude: &lat, Longitude: &lng}.Point()
	require.True(t, ok)
	assert.Equal(t, lng, p.Lon())
	assert.Equal(t, lat, p.Lat())

	_, ok = Site{}.Point()
	assert.False(t, ok)
}
