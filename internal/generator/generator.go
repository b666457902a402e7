package generator

import (
	"context"

	"github.com/orgball2608/reddit-videogen/internal/domain"
)

// Request selects the post to convert. PostID wins over OptionCount.
type Request struct {
	PostID      string
	OptionCount int
}

type Result struct {
	ManifestPath string
	Script       *domain.Script
}

//go:generate go run go.uber.org/mock/mockgen -source=generator.go -destination=mocks/mock.go
type Client interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

type PostSelector interface {
	SelectTop(ctx context.Context, optionCount int) (*domain.Post, error)
	SelectByID(ctx context.Context, id string) (*domain.Post, error)
}

type ContentExtractor interface {
	Extract(ctx context.Context, post *domain.Post) (*domain.Script, error)
}
