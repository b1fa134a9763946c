package planner

import (
	"strconv"
	"strings"

	"github.com/julianstephens/planme/internal/models"
)

const promptTemplate = `
You are a productivity assistant. Always respond *only* with valid JSON matching this format (no extra text):

{
  "plan": [
    {
      "title": "Task name",
      "start_time": "YYYY-MM-DDThh:mm",
      "end_time": "YYYY-MM-DDThh:mm"
    }
  ]
}

Goals: {goals}
Time blocks: {blocks}
Mood: {mood}
`

// BuildPrompt fills the fixed planning template with the request fields
func BuildPrompt(req models.PlanRequest) string {
	req = req.WithDefaults()
	r := strings.NewReplacer(
		"{goals}", formatList(req.Goals),
		"{blocks}", formatList(req.FreeTimeBlocks),
		"{mood}", req.Mood,
	)
	return r.Replace(promptTemplate)
}

// formatList renders values as a bracketed, quoted list: ["a", "b"]
func formatList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
