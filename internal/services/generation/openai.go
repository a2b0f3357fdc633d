package generation

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

// OpenAIProvider implements RecipeProvider for the OpenAI chat completions API
type OpenAIProvider struct {
	apiKey string
}

// NewOpenAIProvider creates a new OpenAI recipe provider
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{apiKey: apiKey}
}

// GenerateRecipe generates a recipe using OpenAI's API
func (p *OpenAIProvider) GenerateRecipe(ctx context.Context, req RecipeRequest) (*RecipeResult, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "openai")}
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	chatReq := chatRequest{
		Model: "gpt-4o-mini",
	}
	chatReq.ResponseFormat.Type = "json_object"
	chatReq.Messages = []chatMessage{
		{Role: "system", Content: ai.BuildSystemPrompt()},
		{Role: "user", Content: ai.BuildUserPrompt(req.Ingredients, req.Cuisine, req.MaxPrepTimeMinutes, req.Preferences)},
	}

	body, _ := json.Marshal(chatReq)
	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "OpenAI"), "POST", "https://api.openai.com/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpclient.InstrumentedClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, err
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	var raw recipePayload
	if err := json.Unmarshal([]byte(chatResp.Choices[0].Message.Content), &raw); err != nil {
		return nil, err
	}

	return raw.toResult(), nil
}
