package marketing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fatih/structs"
	"github.com/questx-lab/rewards/config"
	"github.com/questx-lab/rewards/pkg/api"
)

const ActivePosterTag = "active_poster"

type IEndpoint interface {
	TagContact(ctx context.Context, email, tag string) error
}

type tagRequest struct {
	Email string   `structs:"email"`
	Tags  []string `structs:"tags"`
}

type Endpoint struct {
	apiGenerator api.Generator
	apiKey       string
}

func New(cfg config.MarketingConfigs) *Endpoint {
	return &Endpoint{
		apiGenerator: api.NewGenerator(cfg.APIEndpoints...),
		apiKey:       cfg.APIKey,
	}
}

func (e *Endpoint) TagContact(ctx context.Context, email, tag string) error {
	resp, err := e.apiGenerator.New("/v1/contacts/tags").
		Body(api.JSON(structs.Map(tagRequest{Email: email, Tags: []string{tag}}))).
		POST(ctx, api.OAuth2("Bearer", e.apiKey))
	if err != nil {
		return err
	}

	if resp.Code != http.StatusOK && resp.Code != http.StatusCreated && resp.Code != http.StatusNoContent {
		return fmt.Errorf("invalid status code %d", resp.Code)
	}

	return nil
}
