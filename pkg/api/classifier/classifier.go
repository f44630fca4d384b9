package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/fatih/structs"
	"github.com/pkg/errors"
	"github.com/questx-lab/rewards/config"
	"github.com/questx-lab/rewards/pkg/api"
)

// ErrUnavailable is returned when the classifier is not configured.
var ErrUnavailable = errors.New("classifier is unavailable")

type Result struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

type IClassifier interface {
	Classify(ctx context.Context, text, rubric string) (Result, error)
}

type message struct {
	Role    string `structs:"role" json:"role"`
	Content string `structs:"content" json:"content"`
}

type completionRequest struct {
	Model          string         `structs:"model"`
	Temperature    float64        `structs:"temperature"`
	Messages       []message      `structs:"messages"`
	ResponseFormat map[string]any `structs:"response_format"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type Endpoint struct {
	apiGenerator api.Generator
	apiKey       string
	model        string
}

func New(cfg config.ClassifierConfigs) *Endpoint {
	return NewWithGenerator(api.NewGenerator(cfg.APIEndpoints...), cfg.APIKey, cfg.Model)
}

func NewWithGenerator(generator api.Generator, apiKey, model string) *Endpoint {
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Endpoint{apiGenerator: generator, apiKey: apiKey, model: model}
}

// Classify asks a chat completion model to grade text against the rubric. The
// model must answer with a JSON object {"score": number, "reasoning": string}.
func (e *Endpoint) Classify(ctx context.Context, text, rubric string) (Result, error) {
	if e.apiKey == "" {
		return Result{}, ErrUnavailable
	}

	req := completionRequest{
		Model:       e.model,
		Temperature: 0,
		Messages: []message{
			{Role: "system", Content: rubric},
			{Role: "user", Content: text},
		},
		ResponseFormat: map[string]any{"type": "json_object"},
	}

	resp, err := e.apiGenerator.New("/v1/chat/completions").
		Body(api.JSON(structs.Map(req))).
		POST(ctx, api.OAuth2("Bearer", e.apiKey))
	if err != nil {
		return Result{}, err
	}

	if resp.Code != http.StatusOK {
		return Result{}, fmt.Errorf("invalid status code %d", resp.Code)
	}

	var completion completionResponse
	if err := json.Unmarshal(resp.RawBody, &completion); err != nil {
		return Result{}, errors.Wrap(err, "cannot decode completion")
	}

	if len(completion.Choices) == 0 {
		return Result{}, errors.New("empty completion")
	}

	return ParseResult(completion.Choices[0].Message.Content)
}

// ParseResult extracts the grading object from the model answer, tolerating a
// surrounding markdown code fence.
func ParseResult(content string) (Result, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var raw map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &raw); err != nil {
		return Result{}, errors.Wrap(err, "malformed classifier answer")
	}

	score, err := api.JSON(raw).GetFloat("score")
	if err != nil {
		return Result{}, errors.Wrap(err, "malformed classifier answer")
	}

	reasoning, err := api.JSON(raw).GetString("reasoning")
	if err != nil {
		return Result{}, errors.Wrap(err, "malformed classifier answer")
	}

	return Result{Score: score, Reasoning: reasoning}, nil
}
