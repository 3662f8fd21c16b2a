package render

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"p9e.in/ascomp/models"
)

// DefaultTimeout bounds one browser render end to end.
const DefaultTimeout = 30 * time.Second

// A4 in inches, as the print API wants it.
const (
	a4WidthIn  = 8.27
	a4HeightIn = 11.69
	marginIn   = Margin / 25.4
)

// BrowserRenderer prints the HTML layout through headless Chrome. Each
// render launches its own browser, prints one page and shuts it down.
type BrowserRenderer struct {
	Bin     string // Chrome binary; empty lets the launcher find or fetch one
	Timeout time.Duration
	Log     *zap.Logger
}

func (b *BrowserRenderer) Name() string { return "browser" }

// Render launches Chrome, loads the report HTML into a single tab and
// prints it. The browser and its process are released on every path.
func (b *BrowserRenderer) Render(ctx context.Context, report *models.ASCOMPReport) ([]byte, error) {
	if report == nil {
		report = &models.ASCOMPReport{}
	}
	doc := BuildDocument(report)
	logSignatureErrors(b.Log, doc, report.ReportNumber)

	page, err := HTML(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := b.print(ctx, string(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return out, nil
}

func (b *BrowserRenderer) print(ctx context.Context, html string) ([]byte, error) {
	l := launcher.New().Context(ctx).Headless(true).NoSandbox(true)
	if b.Bin != "" {
		l = l.Bin(b.Bin)
	}
	defer l.Cleanup()
	defer l.Kill()

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(url).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	defer browser.Close()

	tab, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	if err := tab.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("load html: %w", err)
	}
	if err := tab.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for load: %w", err)
	}

	stream, err := tab.PDF(&proto.PagePrintToPDF{
		PaperWidth:        ptr(a4WidthIn),
		PaperHeight:       ptr(a4HeightIn),
		MarginTop:         ptr(marginIn),
		MarginBottom:      ptr(marginIn),
		MarginLeft:        ptr(marginIn),
		MarginRight:       ptr(marginIn),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	out, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf stream: %w", err)
	}
	return out, nil
}

func ptr(v float64) *float64 { return &v }
