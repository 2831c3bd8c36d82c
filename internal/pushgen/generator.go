package pushgen

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"PromoPilot/entity"
	"PromoPilot/internal/config"
	"PromoPilot/internal/lib/sl"
)

const systemPrompt = "You are Push Generator GPT, a specialized marketing copywriter for push notifications."

// Generator produces push-notification copy through the DeepSeek
// chat-completions API. Calls run on a small fixed-size worker pool so a
// slow generation does not stall the rest of the dispatcher.
type Generator struct {
	client *openai.Client
	model  string
	pool   *Pool
	now    func() time.Time
	log    *slog.Logger
}

// NewGenerator creates a generator from the DeepSeek configuration.
func NewGenerator(conf *config.Config, log *slog.Logger) *Generator {
	clientConf := openai.DefaultConfig(conf.DeepSeek.ApiKey)
	clientConf.BaseURL = conf.DeepSeek.BaseURL
	clientConf.HTTPClient = &http.Client{
		Timeout: time.Duration(conf.DeepSeek.TimeoutSec) * time.Second,
	}

	return &Generator{
		client: openai.NewClientWithConfig(clientConf),
		model:  conf.DeepSeek.Model,
		pool:   NewPool(conf.DeepSeek.Workers),
		now:    time.Now,
		log:    log.With(sl.Module("pushgen")),
	}
}

// Generate builds the prompt from the collected request and returns the
// formatted copy. The upstream call is made exactly once.
func (g *Generator) Generate(ctx context.Context, req entity.PushRequest) (string, error) {
	return g.pool.Do(ctx, func() (string, error) {
		return g.complete(ctx, req)
	})
}

func (g *Generator) complete(ctx context.Context, req entity.PushRequest) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req, g.now().UTC())},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return "", fmt.Errorf("deepseek completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("deepseek completion: empty response")
	}

	g.log.Debug("generated push notifications",
		slog.String("requester", req.Requester),
		slog.String("product", req.Product),
	)
	return resp.Choices[0].Message.Content, nil
}

// buildPrompt renders the fixed push-generator instruction template. The
// model's textual output is passed to the user unmodified, so the format
// contract lives entirely in this prompt.
func buildPrompt(req entity.PushRequest, now time.Time) string {
	return fmt.Sprintf(`Current Date and Time (UTC - YYYY-MM-DD HH:MM:SS formatted): %s
Current User's Login: %s

Generate 10 push notification versions for:
Product: %s
Country: %s
Language: %s
App Link: %s
Message: %s

Requirements:
- Title: max 22 characters
- Body: max 108 characters
- Include country-specific dialect
- Use respectful form of address
- Include call to action
- Use appropriate emojis
- Each version must be unique in meaning
- Provide character count for each
- Include English translation

Format for each version:
[%s] title text
(character_count) || _English translation_
[%s] body text
(character_count) || _English translation_`,
		now.Format("2006-01-02 15:04:05"),
		req.Requester,
		req.Product,
		req.Country,
		req.Language,
		req.AppLink,
		req.Message,
		req.Language,
		req.Language,
	)
}
