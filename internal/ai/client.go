package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tidwall/gjson"
)

// Fixed sampling parameters for the single suggestion round trip.
const (
	temperature = 0.8
	maxTokens   = 500
)

// Reason tags why a generation attempt failed, so the HTTP layer can map
// status codes without inspecting error strings.
type Reason string

const (
	ReasonNotConfigured Reason = "not-configured"
	ReasonNoResponse    Reason = "no-response"
	ReasonParse         Reason = "parse-error"
	ReasonUpstream      Reason = "upstream-error"
)

// Error is the single failure type returned by GenerateTasks. Status carries
// the upstream HTTP status code when the SDK exposed one, 0 otherwise.
type Error struct {
	Reason Reason
	Status int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("generate tasks: %s: %v", e.Reason, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// SuggestionInput is the user state the prompt is built from.
type SuggestionInput struct {
	Mood          string `json:"mood"`
	EnergyLevel   int    `json:"energyLevel"`
	AvailableTime int    `json:"availableTime"`
	ScheduleNotes string `json:"scheduleNotes,omitempty"`
}

// SuggestedTask is one model-proposed task. It is never persisted here; the
// client issues a normal create if it wants to keep one.
type SuggestedTask struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Priority      string `json:"priority"`
	EstimatedTime int    `json:"estimatedTime"`
}

type Client struct {
	apiKey string
	model  string
	openai openai.Client
}

func New(apiKey, model string, opts ...option.RequestOption) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
		openai: openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...),
	}
}

// Configured reports whether an API key is present. When it is not, the
// suggestion feature is disabled and no upstream call is ever attempted.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// GenerateTasks performs one blocking prompt/response exchange and parses
// the returned text as a JSON array of suggested tasks. No retries, no
// caching, no streaming.
func (c *Client) GenerateTasks(ctx context.Context, input SuggestionInput) ([]SuggestedTask, error) {
	if !c.Configured() {
		return nil, &Error{
			Reason: ReasonNotConfigured,
			Err:    errors.New("OPENAI_API_KEY is not set"),
		}
	}

	completion, err := c.openai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(generateTasksSystemPrompt),
			openai.UserMessage(BuildTaskPrompt(input)),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		status := 0
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			status = apierr.StatusCode
		}
		return nil, &Error{Reason: ReasonUpstream, Status: status, Err: err}
	}

	if len(completion.Choices) == 0 {
		return nil, &Error{Reason: ReasonNoResponse, Err: errors.New("no choices returned")}
	}
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return nil, &Error{Reason: ReasonNoResponse, Err: errors.New("empty completion text")}
	}

	return parseSuggestions(text)
}

// parseSuggestions decodes the completion text as a JSON array of tasks.
// The array is returned verbatim; individual items are not re-validated.
func parseSuggestions(text string) ([]SuggestedTask, error) {
	if !gjson.Valid(text) {
		return nil, &Error{
			Reason: ReasonParse,
			Err:    fmt.Errorf("completion is not valid JSON: %.50q", text),
		}
	}

	var suggestions []SuggestedTask
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		return nil, &Error{Reason: ReasonParse, Err: err}
	}
	return suggestions, nil
}
