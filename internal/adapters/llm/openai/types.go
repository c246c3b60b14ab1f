package openai

import (
	"encoding/json"

	"github.com/wkddns40/week-3/internal/domain"
)

type promptRef struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

type inputContent struct {
	Type     string `json:"type"`
	ImageURL string `json:"image_url,omitempty"`
	Text     string `json:"text,omitempty"`
}

type inputMessage struct {
	Type    string         `json:"type"`
	Role    string         `json:"role"`
	Content []inputContent `json:"content"`
}

type responsesRequest struct {
	Prompt promptRef      `json:"prompt"`
	Input  []inputMessage `json:"input"`
}

type outputContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outputItem struct {
	Type    string          `json:"type"`
	Content []outputContent `json:"content"`
}

type responsesResponse struct {
	Output []outputItem `json:"output"`
}

type imageDatum struct {
	B64JSON string `json:"b64_json"`
	URL     string `json:"url"`
}

type imagesResponse struct {
	Data []imageDatum `json:"data"`
}

// extractReport returns the text of the first output_text part of the first
// message item. Any other shape yields the placeholder.
func extractReport(body []byte) string {
	var resp responsesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.PlaceholderReport
	}

	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type != "output_text" {
				continue
			}
			if part.Text == "" {
				return domain.PlaceholderReport
			}
			return part.Text
		}
		return domain.PlaceholderReport
	}

	return domain.PlaceholderReport
}

// extractImage prefers inline base64 over a hosted URL.
func extractImage(resp imagesResponse) (domain.OutfitImage, error) {
	if len(resp.Data) == 0 {
		return "", domain.ErrNoImageReturned
	}

	first := resp.Data[0]
	switch {
	case first.B64JSON != "":
		return domain.EncodePNGDataURI(first.B64JSON), nil
	case first.URL != "":
		return domain.OutfitImage(first.URL), nil
	default:
		return "", domain.ErrNoImageReturned
	}
}
