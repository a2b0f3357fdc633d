package image

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/huevitoia/chef/internal/httpclient"
	"github.com/huevitoia/chef/internal/metrics"
	"github.com/huevitoia/chef/internal/services/ai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OpenAIProvider generates dish photos through the OpenAI Images API.
type OpenAIProvider struct {
	apiKey string
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{apiKey: apiKey}
}

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// GenerateImage returns a hosted URL for a generated photo of the dish.
func (p *OpenAIProvider) GenerateImage(ctx context.Context, recipeName string) (string, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "openai-images")}
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	req := imageRequest{
		Model:          "dall-e-3",
		Prompt:         ai.BuildImagePrompt(recipeName),
		N:              1,
		Size:           "1024x1024",
		ResponseFormat: "url",
	}

	body, _ := json.Marshal(req)
	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "OpenAI"), "POST", "https://api.openai.com/v1/images/generations", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpclient.InstrumentedClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("OpenAI Images API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var imgResp imageResponse
	if err := json.Unmarshal(respBody, &imgResp); err != nil {
		return "", err
	}

	if len(imgResp.Data) == 0 || imgResp.Data[0].URL == "" {
		return "", fmt.Errorf("no image returned from OpenAI")
	}

	return imgResp.Data[0].URL, nil
}

// NoopProvider always reports no image; the gateway substitutes the
// placeholder. Used when image generation is disabled.
type NoopProvider struct{}

func (NoopProvider) GenerateImage(context.Context, string) (string, error) {
	return "", nil
}
