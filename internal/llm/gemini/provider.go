package gemini

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"

	"github.com/julianstephens/planme/internal/constants"
	"github.com/julianstephens/planme/internal/llm"
)

// ErrEmptyResponse is returned when the model produced no usable candidate,
// which is how blocked or truncated answers come back.
var ErrEmptyResponse = errors.New("gemini: response contained no text")

type Provider struct {
	client *genai.Client
	model  string
}

func NewProvider(ctx context.Context, apiKey, model string) (*Provider, error) {
	return newProvider(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model)
}

func newProvider(ctx context.Context, cfg *genai.ClientConfig, model string) (*Provider, error) {
	genClient, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if model == "" {
		model = constants.DefaultGeminiModel
	}

	return &Provider{
		client: genClient,
		model:  model,
	}, nil
}

func (p *Provider) Name() string {
	return constants.ProviderGemini
}

func (p *Provider) Complete(ctx context.Context, comp llm.Completion) (string, error) {
	res, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		genai.Text(comp.Prompt),
		generateConfig(p.model, comp),
	)
	if err != nil {
		return "", err
	}

	if res == nil || len(res.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	// Text joins the first candidate's text parts and skips thought parts
	text := res.Text()
	if text == "" {
		if reason := res.Candidates[0].FinishReason; reason != "" && reason != genai.FinishReasonStop {
			return "", fmt.Errorf("%w (finish reason %s)", ErrEmptyResponse, reason)
		}
		return "", ErrEmptyResponse
	}

	return text, nil
}

func generateConfig(model string, comp llm.Completion) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(comp.Temperature)),
	}
	// Thinking tokens count against MaxOutputTokens; the pro models cannot turn it off
	if !strings.Contains(model, "-pro") {
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)}
	}
	if comp.MaxTokens > 0 {
		config.MaxOutputTokens = int32(comp.MaxTokens)
	}
	if comp.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = toGenaiSchema(comp.Schema)
	}
	return config
}

// toGenaiSchema translates a JSON Schema into Gemini's schema type.
// Gemini has no additionalProperties; it only returns declared properties anyway.
func toGenaiSchema(s *llm.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Items:       toGenaiSchema(s.Items),
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
		out.PropertyOrdering = propertyOrder(s)
	}

	return out
}

// propertyOrder puts required properties first, in declared order, then the rest alphabetically
func propertyOrder(s *llm.Schema) []string {
	seen := make(map[string]bool, len(s.Properties))
	order := make([]string, 0, len(s.Properties))
	for _, name := range s.Required {
		if _, ok := s.Properties[name]; ok && !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}

	var rest []string
	for name := range s.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(order, rest...)
}

func genaiType(t llm.SchemaType) genai.Type {
	switch t {
	case llm.TypeObject:
		return genai.TypeObject
	case llm.TypeArray:
		return genai.TypeArray
	case llm.TypeInteger:
		return genai.TypeInteger
	case llm.TypeNumber:
		return genai.TypeNumber
	case llm.TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
