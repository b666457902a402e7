package voiceover

import (
	"context"

	"github.com/orgball2608/reddit-videogen/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=voiceover.go -destination=mocks/mock.go
type Client interface {
	// Create synthesizes text into an audio file named after name and reports
	// its duration. Any error means no clip was produced.
	Create(ctx context.Context, name, text string) (*domain.AudioClip, error)
}
