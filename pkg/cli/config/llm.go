package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/urfave/cli/v3"
)

// Gemini holds configuration for the Gemini LLM client. Gemini serves the
// intake response generation, the knowledge-base embeddings, and the first
// slot of the triage failover chain.
type Gemini struct {
	projectID string
	location  string
	model     string
}

// Flags returns CLI flags for Gemini configuration
func (g *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API",
			Sources:     cli.EnvVars("FREUNDLIER_GEMINI_PROJECT"),
			Destination: &g.projectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Value:       "us-central1",
			Sources:     cli.EnvVars("FREUNDLIER_GEMINI_LOCATION"),
			Destination: &g.location,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model for intake response generation",
			Value:       "gemini-2.5-flash",
			Sources:     cli.EnvVars("FREUNDLIER_GEMINI_MODEL"),
			Destination: &g.model,
		},
	}
}

// LogAttrs returns log attributes for the Gemini configuration
func (g *Gemini) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("project_id", g.projectID),
		slog.String("location", g.location),
		slog.String("model", g.model),
	}
}

// Configure creates a new Gemini LLM client from the configured flags
func (g *Gemini) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if g.projectID == "" {
		return nil, goerr.New("gemini-project is required")
	}

	client, err := gemini.New(ctx, g.projectID, g.location, gemini.WithModel(g.model))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client")
	}

	return client, nil
}

// OpenAI holds configuration for the OpenAI LLM client. OpenAI serves the
// crisis confirmation classifier and the second slot of the triage
// failover chain. Returns nil when no API key is configured.
type OpenAI struct {
	apiKey string
	model  string
}

// Flags returns CLI flags for OpenAI configuration
func (o *OpenAI) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Sources:     cli.EnvVars("FREUNDLIER_OPENAI_API_KEY"),
			Destination: &o.apiKey,
		},
		&cli.StringFlag{
			Name:        "openai-model",
			Usage:       "OpenAI model for classification and triage fallback",
			Value:       "gpt-4o-mini",
			Sources:     cli.EnvVars("FREUNDLIER_OPENAI_MODEL"),
			Destination: &o.model,
		},
	}
}

// Configure creates a new OpenAI LLM client from the configured flags.
// Returns nil if no API key is configured.
func (o *OpenAI) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if o.apiKey == "" {
		return nil, nil
	}

	client, err := openai.New(ctx, o.apiKey, openai.WithModel(o.model))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create OpenAI client")
	}

	return client, nil
}

// Claude holds configuration for the Anthropic Claude LLM client, the
// third slot of the triage failover chain. Returns nil when no API key is
// configured.
type Claude struct {
	apiKey string
	model  string
}

// Flags returns CLI flags for Claude configuration
func (c *Claude) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "claude-api-key",
			Usage:       "Anthropic API key",
			Sources:     cli.EnvVars("FREUNDLIER_CLAUDE_API_KEY"),
			Destination: &c.apiKey,
		},
		&cli.StringFlag{
			Name:        "claude-model",
			Usage:       "Claude model for triage fallback",
			Value:       "claude-sonnet-4-20250514",
			Sources:     cli.EnvVars("FREUNDLIER_CLAUDE_MODEL"),
			Destination: &c.model,
		},
	}
}

// Configure creates a new Claude LLM client from the configured flags.
// Returns nil if no API key is configured.
func (c *Claude) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	client, err := claude.New(ctx, c.apiKey, claude.WithModel(c.model))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Claude client")
	}

	return client, nil
}
