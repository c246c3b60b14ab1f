package domain

// PlaceholderReport is returned when the report text cannot be located in the
// provider response.
const PlaceholderReport = "보고서를 생성할 수 없습니다."

// OutfitVariations is the number of styled images requested per consultation.
const OutfitVariations = 3

// ConsultationRequest is what the browser submits.
type ConsultationRequest struct {
	Photo  string `json:"photo"`
	Height string `json:"height"`
	Weight string `json:"weight"`
}

// Validate reports ErrInvalidRequest when any field is blank.
func (r ConsultationRequest) Validate() error {
	if r.Photo == "" || r.Height == "" || r.Weight == "" {
		return ErrInvalidRequest
	}
	return nil
}

// OutfitImage is either a data URI or a hosted URL.
type OutfitImage string

// ConsultationResult is the aggregated output of one consultation.
type ConsultationResult struct {
	Report       string
	OutfitImages []OutfitImage
}

// ConsultationSummary describes a finished consultation without any image data.
type ConsultationSummary struct {
	Height          string `json:"height"`
	Weight          string `json:"weight"`
	ReportLength    int    `json:"report_length"`
	ImagesRequested int    `json:"images_requested"`
	ImagesProduced  int    `json:"images_produced"`
	LatencyMS       int64  `json:"latency_ms"`
}
