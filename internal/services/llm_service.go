package services

import (
	"context"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	defaultOpenAIModel = "gpt-3.5-turbo"
	defaultGeminiModel = "gemini-2.5-flash"

	// maxPromptInput bounds the CV text sent upstream.
	maxPromptInput = 20000
)

const profileExtractionPrompt = "Extract the main skills, experience, and job preferences from this CV:\n%s"

type LLMService struct {
	Client llms.Model
}

// LLMOptions selects the provider. BaseURL is only honoured by openai and is
// meant for compatible gateways.
type LLMOptions struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// NewLLMService builds the langchaingo client for the configured provider.
func NewLLMService(ctx context.Context, opts LLMOptions) (*LLMService, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for LLM provider %q", opts.Provider)
	}

	var (
		client llms.Model
		err    error
	)
	switch opts.Provider {
	case "googleai":
		model := opts.Model
		if model == "" {
			model = defaultGeminiModel
		}
		client, err = googleai.New(ctx,
			googleai.WithAPIKey(opts.APIKey),
			googleai.WithDefaultModel(model),
		)
	case "openai", "":
		model := opts.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		openaiOpts := []openai.Option{openai.WithToken(opts.APIKey), openai.WithModel(model)}
		if opts.BaseURL != "" {
			openaiOpts = append(openaiOpts, openai.WithBaseURL(opts.BaseURL))
		}
		client, err = openai.New(openaiOpts...)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", opts.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", opts.Provider, err)
	}

	log.Printf("LLM client ready (%s)", opts.Provider)
	return &LLMService{Client: client}, nil
}

// ExtractProfile asks the model for the skills, experience and preferences in
// a CV. The reply is free text.
func (s *LLMService) ExtractProfile(ctx context.Context, cvText string) (string, error) {
	cvText = truncateUTF8(cvText, maxPromptInput)
	prompt := fmt.Sprintf(profileExtractionPrompt, cvText)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return "", fmt.Errorf("LLM completion failed: %w", err)
	}
	return resp, nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
