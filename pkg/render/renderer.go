package render

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"p9e.in/ascomp/models"
	"p9e.in/ascomp/pkg/metrics"
)

// ErrRender wraps every failure to produce a PDF.
var ErrRender = errors.New("pdf render failed")

// Renderer turns one report into PDF bytes.
type Renderer interface {
	Name() string
	Render(ctx context.Context, report *models.ASCOMPReport) ([]byte, error)
}

// Instrumented records metrics and a log line around every render.
func Instrumented(r Renderer, log *zap.Logger) Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &instrumented{next: r, log: log}
}

type instrumented struct {
	next Renderer
	log  *zap.Logger
}

func (i *instrumented) Name() string { return i.next.Name() }

func (i *instrumented) Render(ctx context.Context, report *models.ASCOMPReport) ([]byte, error) {
	if report == nil {
		report = &models.ASCOMPReport{}
	}
	started := time.Now()
	out, err := i.next.Render(ctx, report)
	metrics.RecordRender(i.next.Name(), started, err)

	fields := []zap.Field{
		zap.String("renderer", i.next.Name()),
		zap.String("report_number", report.ReportNumber),
		zap.Duration("took", time.Since(started)),
	}
	if err != nil {
		i.log.Error("pdf render failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	i.log.Info("pdf rendered", append(fields, zap.Int("bytes", len(out)))...)
	return out, nil
}

// New returns the renderer called name ("browser" or "direct"), wrapped
// with metrics. Unknown names fall back to direct drawing.
func New(name, chromeBin string, timeout time.Duration, log *zap.Logger) Renderer {
	var r Renderer
	switch name {
	case "browser":
		r = &BrowserRenderer{Bin: chromeBin, Timeout: timeout, Log: log}
	default:
		r = &DirectRenderer{Log: log}
	}
	return Instrumented(r, log)
}

func logSignatureErrors(log *zap.Logger, doc *Document, reportNumber string) {
	if log == nil {
		return
	}
	for _, s := range doc.Signatures {
		if s.Err != nil {
			log.Warn("signature skipped",
				zap.String("report_number", reportNumber),
				zap.String("signature", s.Label),
				zap.Error(s.Err))
		}
	}
}
