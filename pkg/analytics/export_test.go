package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p9e.in/ascomp/models"
)

func TestExportXLSX(t *testing.T) {
	d := Summarize([]models.RMA{
		rma("PVR Juhu", models.RMAUnderReview, "000-100", "250.50", day(2024, 1, 5)),
		rma("INOX Malad", models.RMACompleted, "000-200", "100", day(2024, 2, 5)),
	})
	d.OpenDTRs = 3

	f, err := ExportXLSX(d, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "By Site", "Top Parts", "Monthly"}, f.GetSheetList())

	v, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Generated: 2024-03-01 09:00:00", v)

	v, err = f.GetCellValue("Summary", "B5")
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	v, err = f.GetCellValue("Summary", "B9")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	rows, err := f.GetRows("Monthly")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Month", "RMAs", "Estimated Cost", "Growth %"}, rows[0])
	assert.Equal(t, "2024-01", rows[1][0])

	rows, err = f.GetRows("By Site")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
