package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/planme/internal/constants"
	apperrors "github.com/julianstephens/planme/internal/errors"
	"github.com/julianstephens/planme/internal/llm"
	"github.com/julianstephens/planme/internal/logger"
	"github.com/julianstephens/planme/internal/models"
)

// Options tune the single completion issued per plan
type Options struct {
	SchemaName  string
	Strict      bool
	Temperature float64
	MaxTokens   int
}

// DefaultOptions are the fixed settings plans are generated with
func DefaultOptions() Options {
	return Options{
		SchemaName:  constants.DefaultSchemaName,
		Strict:      constants.DefaultStrictSchemas,
		Temperature: constants.DefaultTemperature,
		MaxTokens:   constants.DefaultMaxTokens,
	}
}

type Planner struct {
	provider llm.Provider
	opts     Options
	schema   *llm.Schema
}

func New(provider llm.Provider, opts Options) *Planner {
	if opts.SchemaName == "" {
		opts.SchemaName = constants.DefaultSchemaName
	}
	return &Planner{
		provider: provider,
		opts:     opts,
		schema:   PlanSchema(),
	}
}

// Generate asks the provider for a plan and parses its answer.
// There is no retry: any provider failure is returned as KindUpstreamCallFailed
// and any malformed answer as KindSchemaValidationFailed.
func (p *Planner) Generate(ctx context.Context, req models.PlanRequest) (*models.PlanResponse, error) {
	content, err := p.provider.Complete(ctx, llm.Completion{
		Prompt:      BuildPrompt(req),
		SchemaName:  p.opts.SchemaName,
		Schema:      p.schema,
		Strict:      p.opts.Strict,
		Temperature: p.opts.Temperature,
		MaxTokens:   p.opts.MaxTokens,
	})
	if err != nil {
		return nil, apperrors.New(apperrors.KindUpstreamCallFailed, p.provider.Name(), err)
	}

	logger.Info("Structured response", "provider", p.provider.Name(), "content", content)

	return ParsePlan(content)
}

type rawTask struct {
	Title     *string `json:"title"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

type rawPlan struct {
	Plan *[]rawTask `json:"plan"`
}

// ParsePlan decodes model output against the plan schema. Unknown properties,
// missing required properties, wrong types and trailing data are all rejected.
func ParsePlan(content string) (*models.PlanResponse, error) {
	const op = "parse plan"

	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()

	var raw rawPlan
	if err := dec.Decode(&raw); err != nil {
		return nil, apperrors.New(apperrors.KindSchemaValidationFailed, op, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, apperrors.Newf(apperrors.KindSchemaValidationFailed, op, "unexpected data after plan object")
	}
	if raw.Plan == nil {
		return nil, apperrors.Newf(apperrors.KindSchemaValidationFailed, op, "missing required property %q", "plan")
	}

	tasks := make([]models.Task, 0, len(*raw.Plan))
	for i, t := range *raw.Plan {
		if err := t.validate(); err != nil {
			return nil, apperrors.New(apperrors.KindSchemaValidationFailed, op, fmt.Errorf("plan[%d]: %w", i, err))
		}
		tasks = append(tasks, models.Task{
			Title:     *t.Title,
			StartTime: t.StartTime,
			EndTime:   t.EndTime,
		})
	}

	return &models.PlanResponse{Plan: tasks}, nil
}

func (t rawTask) validate() error {
	switch {
	case t.Title == nil:
		return fmt.Errorf("missing required property %q", "title")
	case t.StartTime == nil:
		return fmt.Errorf("missing required property %q", "start_time")
	case t.EndTime == nil:
		return fmt.Errorf("missing required property %q", "end_time")
	}
	return nil
}
