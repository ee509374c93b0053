package layout

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-docgen/internal/rendering"
)

// DefaultChromeTimeout bounds one print job.
const DefaultChromeTimeout = 30 * time.Second

const pointsPerInch = 72.0

// ChromeEngine renders the content tree as HTML and prints it with headless Chrome.
type ChromeEngine struct {
	ExecPath string
	Timeout  time.Duration
	Verbose  bool
}

// NewChromeEngine creates a Chrome engine. An empty execPath uses the chromedp lookup.
func NewChromeEngine(execPath string, timeout time.Duration) *ChromeEngine {
	if timeout <= 0 {
		timeout = DefaultChromeTimeout
	}
	return &ChromeEngine{ExecPath: execPath, Timeout: timeout}
}

func (e *ChromeEngine) Name() string {
	return "chrome"
}

// Print writes the HTML to a temporary file and prints it to PDF.
func (e *ChromeEngine) Print(ctx context.Context, doc *Document) ([]byte, error) {
	html, err := HTML(doc)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "resume-*.html")
	if err != nil {
		return nil, &rendering.RenderError{Message: "failed to create temp html", Cause: err}
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(html); err != nil {
		_ = tmp.Close()
		return nil, &rendering.RenderError{Message: "failed to write temp html", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return nil, &rendering.RenderError{Message: "failed to write temp html", Cause: err}
	}

	if e.Verbose {
		log.Printf("[chrome] Printing %s (%d bytes of html)", tmp.Name(), len(html))
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(e.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultChromeTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	m := doc.PageMargins
	var buf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(doc.PageWidth / pointsPerInch).
				WithPaperHeight(doc.PageHeight / pointsPerInch).
				WithMarginTop(m.Top() / pointsPerInch).
				WithMarginRight(m.Right() / pointsPerInch).
				WithMarginBottom(m.Bottom() / pointsPerInch).
				WithMarginLeft(m.Left() / pointsPerInch).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &rendering.RenderError{Message: "chrome print failed", Cause: err}
	}

	if e.Verbose {
		log.Printf("[chrome] Printed %d bytes", len(buf))
	}
	return buf, nil
}

// FindChrome returns the first Chrome or Chromium binary on PATH.
func FindChrome() (string, error) {
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "chrome"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no chrome or chromium binary found on PATH")
}
