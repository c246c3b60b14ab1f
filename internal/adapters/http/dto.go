package http

import "github.com/wkddns40/week-3/internal/domain"

// ConsultRequest is the JSON body of POST /api/consult.
type ConsultRequest struct {
	Photo  string `json:"photo"`
	Height string `json:"height"`
	Weight string `json:"weight"`
}

// ConsultResponse is the JSON shape returned by POST /api/consult.
type ConsultResponse struct {
	Report       string   `json:"report"`
	OutfitImages []string `json:"outfitImages"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (r ConsultRequest) toDomain() domain.ConsultationRequest {
	return domain.ConsultationRequest{
		Photo:  r.Photo,
		Height: r.Height,
		Weight: r.Weight,
	}
}

func toResponse(r domain.ConsultationResult) ConsultResponse {
	images := make([]string, len(r.OutfitImages))
	for i, img := range r.OutfitImages {
		images[i] = string(img)
	}
	return ConsultResponse{
		Report:       r.Report,
		OutfitImages: images,
	}
}
