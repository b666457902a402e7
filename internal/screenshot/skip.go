package screenshot

import (
	"context"

	"github.com/orgball2608/reddit-videogen/internal/domain"
)

// Skip is used when screenshots are disabled. It never starts a browser.
type Skip struct{}

var _ Client = Skip{}

func (Skip) Capture(context.Context, string, *domain.Script) error {
	return nil
}
