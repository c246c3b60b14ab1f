package ports

import (
	"context"

	"github.com/wkddns40/week-3/internal/domain"
)

// ConsultationNotifier publishes a summary of every completed consultation.
type ConsultationNotifier interface {
	ConsultationCompleted(ctx context.Context, summary domain.ConsultationSummary) error
}
