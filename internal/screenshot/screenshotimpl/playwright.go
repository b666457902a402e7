package screenshotimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/reddit-videogen/pkg/config"
	"github.com/orgball2608/reddit-videogen/pkg/logger"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/fx"
)

// PlaywrightManager holds the Chromium instance shared by all captures of a run.
type PlaywrightManager struct {
	browser    playwright.Browser
	stopDriver func() error
	logger     logger.Logger
}

func (pm *PlaywrightManager) Browser() playwright.Browser {
	return pm.browser
}

// NewPlaywrightManager launches Chromium through the playwright driver and
// registers Stop as an OnStop hook.
func NewPlaywrightManager(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (*PlaywrightManager, error) {
	log = log.WithComponent("Playwright")
	log.Info("Launching browser", "headless", cfg.Screenshot.Headless)

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright driver: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Screenshot.Headless),
		Args: []string{
			"--no-sandbox",
			"--disable-setuid-sandbox",
			"--disable-dev-shm-usage",
			"--no-first-run",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	manager := &PlaywrightManager{
		browser:    browser,
		stopDriver: pw.Stop,
		logger:     log,
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return manager.Stop()
		},
	})
	log.Info("Browser ready")
	return manager, nil
}

// Stop closes the browser before the driver. A browser close failure is logged
// and does not prevent stopping the driver.
func (pm *PlaywrightManager) Stop() error {
	pm.logger.Info("Closing browser")
	if err := pm.browser.Close(); err != nil {
		pm.logger.Error("Failed to close browser", "error", err)
	}
	if err := pm.stopDriver(); err != nil {
		pm.logger.Error("Failed to stop playwright driver", "error", err)
		return err
	}
	pm.logger.Info("Browser closed")
	return nil
}
