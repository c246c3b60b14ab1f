package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	ce "github.com/cloudevents/sdk-go/v2"
	"github.com/cloudevents/sdk-go/v2/client"
	"github.com/google/uuid"

	"github.com/wkddns40/week-3/internal/domain"
	"github.com/wkddns40/week-3/internal/ports"
)

// Notifier publishes consultation summaries as CloudEvents. With an empty
// sink URL it only logs what it would have sent.
type Notifier struct {
	ceClient  client.Client
	sinkURL   string
	source    string
	eventType string
	logger    *slog.Logger
}

var _ ports.ConsultationNotifier = (*Notifier)(nil)

func NewNotifier(sinkURL, source, eventType string, logger *slog.Logger) (*Notifier, error) {
	n := &Notifier{
		sinkURL:   sinkURL,
		source:    source,
		eventType: eventType,
		logger:    logger,
	}
	if sinkURL == "" {
		return n, nil
	}

	ceClient, err := ce.NewClientHTTP(ce.WithTarget(sinkURL))
	if err != nil {
		return nil, fmt.Errorf("create CloudEvents client: %w", err)
	}
	n.ceClient = ceClient
	return n, nil
}

func (n *Notifier) ConsultationCompleted(ctx context.Context, summary domain.ConsultationSummary) error {
	event := ce.NewEvent()
	event.SetID(uuid.NewString())
	event.SetSource(n.source)
	event.SetType(n.eventType)
	event.SetTime(time.Now())

	if err := event.SetData(ce.ApplicationJSON, summary); err != nil {
		return fmt.Errorf("set event data: %w", err)
	}

	if n.ceClient == nil {
		n.logger.DebugContext(ctx, "no event sink configured, dropping event",
			"event_id", event.ID(),
			"images_produced", summary.ImagesProduced,
		)
		return nil
	}

	result := n.ceClient.Send(ctx, event)
	if ce.IsUndelivered(result) {
		return fmt.Errorf("deliver event: %w", result)
	}
	if !ce.IsACK(result) {
		return fmt.Errorf("event rejected: %w", result)
	}

	n.logger.DebugContext(ctx, "event sent", "event_id", event.ID())
	return nil
}
