package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/planme/internal/errors"
	"github.com/julianstephens/planme/internal/llm"
	"github.com/julianstephens/planme/internal/models"
)

type fakeProvider struct {
	content string
	err     error
	calls   int
	last    llm.Completion
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, c llm.Completion) (string, error) {
	f.calls++
	f.last = c
	return f.content, f.err
}

func TestGenerate(t *testing.T) {
	provider := &fakeProvider{content: `{"plan":[
		{"title":"Study Go","start_time":"2024-01-02T09:00","end_time":"2024-01-02T10:00"},
		{"title":"Run","start_time":"2024-01-02T18:00","end_time":"2024-01-02T18:30"}
	]}`}
	p := New(provider, DefaultOptions())

	resp, err := p.Generate(context.Background(), models.PlanRequest{
		Goals:          []string{"Study Go", "Run"},
		FreeTimeBlocks: []string{"2024-01-02T09:00", "2024-01-02T18:00"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Plan, 2)

	assert.Equal(t, "Study Go", resp.Plan[0].Title)
	require.NotNil(t, resp.Plan[0].StartTime)
	assert.Equal(t, "2024-01-02T09:00", *resp.Plan[0].StartTime)
	assert.Equal(t, "Run", resp.Plan[1].Title)

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, "plan_output", provider.last.SchemaName)
	assert.True(t, provider.last.Strict)
	assert.Equal(t, 0.0, provider.last.Temperature)
	assert.Equal(t, 300, provider.last.MaxTokens)
	assert.Contains(t, provider.last.Prompt, "Mood: neutral")
}

func TestGenerateUpstreamFailure(t *testing.T) {
	cause := errors.New("connection reset")
	provider := &fakeProvider{err: cause}
	p := New(provider, DefaultOptions())

	_, err := p.Generate(context.Background(), models.PlanRequest{Goals: []string{"x"}})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindUpstreamCallFailed))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, provider.calls, "failed calls are not retried")
}

func TestGenerateSchemaFailure(t *testing.T) {
	p := New(&fakeProvider{content: "Sure! Here is your plan."}, DefaultOptions())

	_, err := p.Generate(context.Background(), models.PlanRequest{Goals: []string{"x"}})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindSchemaValidationFailed, apperrors.KindOf(err))
}

func TestParsePlan(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantTasks int
		wantErr   string
	}{
		{
			name:      "empty plan",
			content:   `{"plan":[]}`,
			wantTasks: 0,
		},
		{
			name:      "three tasks",
			content:   `{"plan":[{"title":"a","start_time":"s","end_time":"e"},{"title":"b","start_time":"s","end_time":"e"},{"title":"c","start_time":"s","end_time":"e"}]}`,
			wantTasks: 3,
		},
		{
			name:    "not json",
			content: `plan: none`,
			wantErr: "parse plan",
		},
		{
			name:    "missing plan",
			content: `{}`,
			wantErr: `missing required property "plan"`,
		},
		{
			name:    "null plan",
			content: `{"plan":null}`,
			wantErr: `missing required property "plan"`,
		},
		{
			name:    "extra top-level property",
			content: `{"plan":[],"notes":"hi"}`,
			wantErr: "unknown field",
		},
		{
			name:    "extra task property",
			content: `{"plan":[{"title":"a","start_time":"s","end_time":"e","priority":1}]}`,
			wantErr: "unknown field",
		},
		{
			name:    "missing end_time",
			content: `{"plan":[{"title":"a","start_time":"s"}]}`,
			wantErr: `plan[0]: missing required property "end_time"`,
		},
		{
			name:    "missing title",
			content: `{"plan":[{"title":"a","start_time":"s","end_time":"e"},{"start_time":"s","end_time":"e"}]}`,
			wantErr: `plan[1]: missing required property "title"`,
		},
		{
			name:    "wrong type",
			content: `{"plan":[{"title":5,"start_time":"s","end_time":"e"}]}`,
			wantErr: "cannot unmarshal",
		},
		{
			name:    "trailing data",
			content: `{"plan":[]} {"plan":[]}`,
			wantErr: "unexpected data after plan object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParsePlan(tt.content)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, apperrors.KindSchemaValidationFailed, apperrors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Len(t, resp.Plan, tt.wantTasks)
			assert.NotNil(t, resp.Plan, "an empty plan should encode as [] not null")
		})
	}
}
