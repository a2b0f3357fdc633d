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

// GroqProvider implements RecipeProvider for Groq API
type GroqProvider struct {
	apiKey string
}

// NewGroqProvider creates a new Groq recipe provider
func NewGroqProvider(apiKey string) *GroqProvider {
	return &GroqProvider{apiKey: apiKey}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// recipePayload is the JSON shape the prompt instructs the model to emit.
type recipePayload struct {
	RecipeName   string `json:"recipe_name"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

func (p recipePayload) toResult() *RecipeResult {
	return &RecipeResult{
		RecipeName:   p.RecipeName,
		Ingredients:  p.Ingredients,
		Instructions: p.Instructions,
	}
}

// GenerateRecipe generates a recipe using Groq's API
func (p *GroqProvider) GenerateRecipe(ctx context.Context, req RecipeRequest) (*RecipeResult, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "groq")}
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	chatReq := chatRequest{
		Model: "llama-3.3-70b-versatile",
	}
	chatReq.ResponseFormat.Type = "json_object"
	chatReq.Messages = []chatMessage{
		{Role: "system", Content: ai.BuildSystemPrompt()},
		{Role: "user", Content: ai.BuildUserPrompt(req.Ingredients, req.Cuisine, req.MaxPrepTimeMinutes, req.Preferences)},
	}

	body, _ := json.Marshal(chatReq)
	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "Groq"), "POST", "https://api.groq.com/openai/v1/chat/completions", bytes.NewReader(body))
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
		return nil, fmt.Errorf("Groq API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, err
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no response from Groq")
	}

	var raw recipePayload
	if err := json.Unmarshal([]byte(chatResp.Choices[0].Message.Content), &raw); err != nil {
		return nil, err
	}

	return raw.toResult(), nil
}
