package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wkddns40/week-3/internal/domain"
	"github.com/wkddns40/week-3/internal/ports"
)

// ConsultService orchestrates report generation and the outfit image fan-out.
type ConsultService struct {
	provider ports.StyleProvider
	notifier ports.ConsultationNotifier
	logger   *slog.Logger
}

func NewConsultService(provider ports.StyleProvider, notifier ports.ConsultationNotifier, logger *slog.Logger) *ConsultService {
	return &ConsultService{
		provider: provider,
		notifier: notifier,
		logger:   logger,
	}
}

// Consult runs one consultation. The report must succeed; outfit images are
// best-effort and failed variations are dropped from the result.
func (s *ConsultService) Consult(ctx context.Context, req domain.ConsultationRequest) (domain.ConsultationResult, error) {
	if err := req.Validate(); err != nil {
		return domain.ConsultationResult{}, err
	}

	start := time.Now()

	report, err := s.provider.GenerateReport(ctx, ports.ReportInput{
		PhotoURI: req.Photo,
		Text:     domain.ReportText(req.Height, req.Weight),
	})
	if err != nil {
		return domain.ConsultationResult{}, fmt.Errorf("generate report: %w", err)
	}

	photo, err := domain.DecodeDataURI(req.Photo)
	if err != nil {
		return domain.ConsultationResult{}, fmt.Errorf("decode photo: %w", err)
	}
	s.logger.DebugContext(ctx, "photo decoded", "format", photo.Format(), "bytes", photo.Size())

	prompts := domain.OutfitPrompts(req.Height, req.Weight)
	images := s.generateOutfits(ctx, photo, prompts)

	result := domain.ConsultationResult{
		Report:       report,
		OutfitImages: images,
	}

	s.notify(ctx, domain.ConsultationSummary{
		Height:          req.Height,
		Weight:          req.Weight,
		ReportLength:    len([]rune(report)),
		ImagesRequested: len(prompts),
		ImagesProduced:  len(images),
		LatencyMS:       time.Since(start).Milliseconds(),
	})

	return result, nil
}

// generateOutfits issues one edit per prompt concurrently and waits for all of
// them. Edits are not cancelled once issued.
func (s *ConsultService) generateOutfits(ctx context.Context, photo domain.Photo, prompts []string) []domain.OutfitImage {
	ctx = context.WithoutCancel(ctx)
	slots := make([]domain.OutfitImage, len(prompts))

	var g errgroup.Group
	for i, prompt := range prompts {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					s.logger.ErrorContext(ctx, "outfit generation panicked", "variation", i+1, "panic", r)
				}
			}()

			img, err := s.provider.EditImage(ctx, ports.EditInput{
				Photo:  photo.Data(),
				Prompt: prompt,
			})
			if err != nil {
				s.logger.WarnContext(ctx, "outfit generation failed", "variation", i+1, "error", err)
				return nil
			}
			slots[i] = img
			return nil
		})
	}
	_ = g.Wait()

	images := make([]domain.OutfitImage, 0, len(slots))
	for _, img := range slots {
		if img != "" {
			images = append(images, img)
		}
	}
	return images
}

func (s *ConsultService) notify(ctx context.Context, summary domain.ConsultationSummary) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.ConsultationCompleted(ctx, summary); err != nil {
		s.logger.WarnContext(ctx, "consultation event not delivered", "error", err)
	}
}
