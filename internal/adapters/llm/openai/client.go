package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/wkddns40/week-3/internal/domain"
	"github.com/wkddns40/week-3/internal/ports"
)

// Settings holds the fixed request parameters sent with every call.
type Settings struct {
	PromptID      string
	PromptVersion string
	ImageModel    string
	ImageSize     string
}

// Client implements ports.StyleProvider via the OpenAI Responses and Images APIs.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	settings   Settings
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL string, settings Settings, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		settings:   settings,
		logger:     logger,
	}
}

var _ ports.StyleProvider = (*Client)(nil)

func (c *Client) GenerateReport(ctx context.Context, in ports.ReportInput) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrMissingAPIKey
	}

	reqBody := responsesRequest{
		Prompt: promptRef{ID: c.settings.PromptID, Version: c.settings.PromptVersion},
		Input: []inputMessage{
			{
				Type: "message",
				Role: "user",
				Content: []inputContent{
					{Type: "input_image", ImageURL: in.PhotoURI},
					{Type: "input_text", Text: in.Text},
				},
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	respBody, status, err := c.do(req)
	if err != nil {
		return "", err
	}

	if !isSuccess(status) {
		return "", &domain.UpstreamError{Kind: domain.ErrUpstreamReport, Status: status, Body: string(respBody)}
	}

	report := extractReport(respBody)
	if report == domain.PlaceholderReport {
		c.logger.WarnContext(ctx, "report text not found in response, using placeholder")
	}
	return report, nil
}

func (c *Client) EditImage(ctx context.Context, in ports.EditInput) (domain.OutfitImage, error) {
	if c.apiKey == "" {
		return "", domain.ErrMissingAPIKey
	}

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="photo.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(in.Photo); err != nil {
		return "", fmt.Errorf("write image part: %w", err)
	}

	fields := []struct{ name, value string }{
		{"prompt", in.Prompt},
		{"model", c.settings.ImageModel},
		{"n", strconv.Itoa(1)},
		{"size", c.settings.ImageSize},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/edits", &form)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	respBody, status, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstreamImage, err)
	}

	if !isSuccess(status) {
		return "", &domain.UpstreamError{Kind: domain.ErrUpstreamImage, Status: status, Body: string(respBody)}
	}

	var imgResp imagesResponse
	if err := json.Unmarshal(respBody, &imgResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", domain.ErrUpstreamImage, err)
	}

	return extractImage(imgResp)
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	return respBody, resp.StatusCode, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
