package importer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"p9e.in/ascomp/models"
	"p9e.in/ascomp/pkg/csvmap"
	"p9e.in/ascomp/pkg/metrics"
)

// Options control one import run.
type Options struct {
	CreatedBy string
}

// Result is the outcome of mapping a batch of rows. Lines holds the
// spreadsheet row of each entry in Reports.
type Result struct {
	Total      int                   `json:"total"`
	Valid      int                   `json:"valid"`
	Duplicates int                   `json:"duplicates"`
	Inserted   int                   `json:"inserted"`
	Errors     []string              `json:"errors"`
	Reports    []models.ASCOMPReport `json:"-"`
	Lines      []int                 `json:"-"`
}

// Fingerprint hashes a row's non-blank cells, trimmed and sorted by key,
// so that the same sheet imported twice yields the same value.
func Fingerprint(row Row) string {
	keys := make([]string, 0, len(row.Cells))
	for k, v := range row.Cells {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strings.TrimSpace(row.Cells[k]))
		b.WriteByte(0x1f)
	}
	return fmt.Sprintf("%016x", xxh3.HashString(b.String()))
}

// Import validates and maps rows. Invalid rows are reported and skipped;
// rows repeating an earlier row in the same batch count as duplicates, and
// a different row reusing an earlier report number is an error.
// Row numbers in messages are spreadsheet rows, the header being row 1.
// Rows built without a Line are numbered by position.
func Import(ctx context.Context, rows []Row, opts Options) (*Result, error) {
	res := &Result{Total: len(rows), Errors: []string{}}
	seen := make(map[string]bool, len(rows))
	numbers := make(map[string]int, len(rows))

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := row.Line
		if line == 0 {
			line = i + 2
		}
		v := csvmap.ValidateRow(row.Cells, line)
		if !v.Valid {
			res.Errors = append(res.Errors, v.Errors...)
			continue
		}

		fp := Fingerprint(row)
		if seen[fp] {
			res.Duplicates++
			continue
		}
		seen[fp] = true

		report := csvmap.MapRow(row.Cells)
		if report.ReportNumber == "" {
			report.ReportNumber = fmt.Sprintf("ASCOMP-%s-%s", report.Date.Time().Format("20060102"), fp[:8])
		}
		if first, ok := numbers[report.ReportNumber]; ok {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: report number %s is already used on row %d", line, report.ReportNumber, first))
			continue
		}
		numbers[report.ReportNumber] = line

		report.ImportFingerprint = &fp
		report.CreatedBy = opts.CreatedBy
		report.RawImport = raw(row)

		res.Reports = append(res.Reports, report)
		res.Lines = append(res.Lines, line)
		res.Valid++
	}

	metrics.RecordImportRows("valid", res.Valid)
	metrics.RecordImportRows("duplicate", res.Duplicates)
	metrics.RecordImportRows("invalid", res.Total-res.Valid-res.Duplicates)
	return res, nil
}

func raw(row Row) map[string]interface{} {
	out := make(map[string]interface{}, len(row.Cells))
	for k, v := range row.Cells {
		out[k] = v
	}
	return out
}

// Service stores imported reports.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, log: log}
}

// Persist inserts res.Reports in one transaction. Reports whose
// fingerprint is already stored are skipped and counted as duplicates, so
// re-importing a sheet is harmless. A report whose number is taken by a
// different stored report is skipped with a row error rather than
// failing the batch.
func (s *Service) Persist(ctx context.Context, res *Result) error {
	if len(res.Reports) == 0 {
		return nil
	}
	inserted, duplicates := 0, 0
	var conflicts []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range res.Reports {
			report := &res.Reports[i]

			var existing models.ASCOMPReport
			q := tx.Unscoped().Select("id", "import_fingerprint").
				Where("report_number = ?", report.ReportNumber).Limit(1).Find(&existing)
			if q.Error != nil {
				return fmt.Errorf("look up report %s: %w", report.ReportNumber, q.Error)
			}
			if q.RowsAffected > 0 {
				if existing.ImportFingerprint != nil && report.ImportFingerprint != nil &&
					*existing.ImportFingerprint == *report.ImportFingerprint {
					duplicates++
					continue
				}
				conflicts = append(conflicts, fmt.Sprintf("Row %d: report number %s already exists", res.line(i), report.ReportNumber))
				continue
			}

			q = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "import_fingerprint"}},
				DoNothing: true,
			}).Create(report)
			if q.Error != nil {
				return fmt.Errorf("insert report %s: %w", report.ReportNumber, q.Error)
			}
			if q.RowsAffected == 0 {
				duplicates++
				continue
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		res.Inserted = 0
		return err
	}
	res.Inserted += inserted
	res.Duplicates += duplicates
	res.Errors = append(res.Errors, conflicts...)
	s.log.Info("ascomp import stored",
		zap.Int("total", res.Total),
		zap.Int("inserted", res.Inserted),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("errors", len(res.Errors)))
	return nil
}

func (r *Result) line(i int) int {
	if i < len(r.Lines) {
		return r.Lines[i]
	}
	return i + 2
}
