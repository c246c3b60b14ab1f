package ports

import (
	"context"

	"github.com/wkddns40/week-3/internal/domain"
)

// ReportInput is what the provider needs to write the style report.
type ReportInput struct {
	PhotoURI string
	Text     string
}

// EditInput describes one styled image edit.
type EditInput struct {
	Photo  []byte
	Prompt string
}

// StyleProvider generates reports and styled images. Implementations own
// transport, authentication and response parsing.
type StyleProvider interface {
	// GenerateReport returns the report text, or domain.PlaceholderReport when
	// the response has no recognizable text.
	GenerateReport(ctx context.Context, in ReportInput) (string, error)
	EditImage(ctx context.Context, in EditInput) (domain.OutfitImage, error)
}
