package screenshotimpl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/orgball2608/reddit-videogen/internal/domain"
	"github.com/orgball2608/reddit-videogen/internal/screenshot"
	"github.com/orgball2608/reddit-videogen/pkg/config"
	"github.com/orgball2608/reddit-videogen/pkg/logger"
	"github.com/orgball2608/reddit-videogen/pkg/retry"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/fx"
)

// postHandle is the element that renders the submission itself.
const postHandle = "Post"

type Opts struct {
	fx.In

	Config     *config.Config
	Logger     logger.Logger
	Playwright *PlaywrightManager
}

type ScreenshotImpl struct {
	playwright        *PlaywrightManager
	logger            logger.Logger
	dir               string
	width             int
	height            int
	waitTimeout       time.Duration
	navigationTimeout time.Duration
}

var _ screenshot.Client = (*ScreenshotImpl)(nil)

func New(opts Opts) *ScreenshotImpl {
	return &ScreenshotImpl{
		playwright:        opts.Playwright,
		logger:            opts.Logger.WithComponent("ScreenshotCapturer"),
		dir:               opts.Config.Output.ScreenshotDir,
		width:             opts.Config.Screenshot.Width,
		height:            opts.Config.Screenshot.Height,
		waitTimeout:       opts.Config.Screenshot.WaitTimeout,
		navigationTimeout: opts.Config.Screenshot.NavigationTimeout,
	}
}

func (s *ScreenshotImpl) Capture(ctx context.Context, filePrefix string, script *domain.Script) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create screenshot dir: %w", err)
	}

	page, cleanup, err := s.newCapturePage(ctx, script.URL)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := page.Evaluate("window.focus()"); err != nil {
		s.logger.Debug("Could not focus window", "error", err)
	}

	for _, shot := range plan(s.dir, filePrefix, script) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.captureElement(page, shot); err != nil {
			return err
		}
		shot.assign(shot.path)
		s.logger.Info("Screenshot saved", "handle", shot.handle, "path", shot.path)
	}
	return nil
}

func (s *ScreenshotImpl) captureElement(page playwright.Page, shot shot) error {
	element, err := page.WaitForSelector(shot.selector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(s.waitTimeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("element %q not found: %w", shot.handle, err)
	}
	if element == nil {
		return fmt.Errorf("element %q not found", shot.handle)
	}

	if _, err := element.Screenshot(playwright.ElementHandleScreenshotOptions{
		Path: playwright.String(shot.path),
	}); err != nil {
		return fmt.Errorf("screenshot of %q: %w", shot.handle, err)
	}
	return nil
}

// newCapturePage opens a fresh browser context sized for a vertical video and
// navigates to url. The returned cleanup closes the context.
func (s *ScreenshotImpl) newCapturePage(ctx context.Context, url string) (playwright.Page, func(), error) {
	brContext, err := s.playwright.Browser().NewContext(playwright.BrowserNewContextOptions{
		Viewport:          &playwright.Size{Width: s.width, Height: s.height},
		DeviceScaleFactor: playwright.Float(1),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not create browser context: %w", err)
	}

	cleanup := func() {
		if err := brContext.Close(); err != nil {
			s.logger.Warn("Failed to close browser context", "error", err)
		}
		debug.FreeOSMemory()
	}

	page, err := brContext.NewPage()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("could not create new page: %w", err)
	}

	gotoOperation := func() error {
		_, err := page.Goto(url, playwright.PageGotoOptions{
			Timeout: playwright.Float(float64(s.navigationTimeout.Milliseconds())),
		})
		return err
	}

	if err := retry.Do(ctx, s.logger, "PageGoto", gotoOperation, retry.DefaultConfig()); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("could not goto page '%s' after retries: %w", url, err)
	}

	return page, cleanup, nil
}

// shot is one element to capture and where its path is recorded.
type shot struct {
	handle   string
	selector string
	path     string
	assign   func(path string)
}

// plan lists the title shot followed by one shot per scene, in scene order.
func plan(dir, filePrefix string, script *domain.Script) []shot {
	shots := make([]shot, 0, len(script.Scenes)+1)
	shots = append(shots, shot{
		handle:   postHandle,
		selector: "." + postHandle,
		path:     fileName(dir, filePrefix, postHandle),
		assign:   func(p string) { script.TitleScreenshot = p },
	})
	for _, scene := range script.Scenes {
		scene := scene
		handle := scene.DOMID()
		shots = append(shots, shot{
			handle:   handle,
			selector: "#" + handle,
			path:     fileName(dir, filePrefix, handle),
			assign:   func(p string) { scene.Screenshot = p },
		})
	}
	return shots
}

func fileName(dir, filePrefix, handle string) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s.png", filePrefix, handle))
}
