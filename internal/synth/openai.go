package synth

import (
	"context"
	"errors"
	"strings"
	"time"

	"contentsmith/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are a senior technical writer producing SEO articles for a developer tool.
Follow the structure and frontmatter template in the user prompt exactly.
Only state facts listed in the prompt; never invent commands, flags, or version numbers.
Output the complete markdown document and nothing else.`

// OpenAIProvider generates documents via an OpenAI-compatible chat
// completions endpoint. Both the primary and secondary providers are
// instances of this type pointed at different endpoints/models.
type OpenAIProvider struct {
	name   string
	client *openai.Client
	model  string
}

// NewOpenAI builds a provider from one endpoint config. Returns nil when
// the endpoint is not configured so callers can skip it in the chain.
func NewOpenAI(name string, cfg config.OpenAIConfig) *OpenAIProvider {
	if strings.TrimSpace(cfg.APIKey) == "" || strings.TrimSpace(cfg.Model) == "" {
		return nil
	}
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	return &OpenAIProvider{name: name, client: c, model: cfg.Model}
}

func (o *OpenAIProvider) Name() string { return o.name }

// Generate requests a completion with a bounded timeout and unwraps the
// message envelope. An empty completion is treated as a failure so the
// chain can fall through to the next provider.
func (o *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("blank completion content")
	}
	return out, nil
}
