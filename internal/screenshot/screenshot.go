package screenshot

import (
	"context"

	"github.com/orgball2608/reddit-videogen/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=screenshot.go -destination=mocks/mock.go
type Client interface {
	// Capture saves the title and every scene of script as PNG files named
	// after filePrefix and records their paths in script.
	Capture(ctx context.Context, filePrefix string, script *domain.Script) error
}
