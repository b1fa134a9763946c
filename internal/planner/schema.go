package planner

import "github.com/julianstephens/planme/internal/llm"

// PlanSchema is the response format the model must follow: an object holding
// a "plan" array of tasks, every field required, nothing extra allowed.
func PlanSchema() *llm.Schema {
	task := (&llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"title":      {Type: llm.TypeString, Description: "Task title"},
			"start_time": {Type: llm.TypeString, Description: "Start timestamp"},
			"end_time":   {Type: llm.TypeString, Description: "End timestamp"},
		},
		Required: []string{"title", "start_time", "end_time"},
	}).Closed()

	return (&llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"plan": {Type: llm.TypeArray, Items: task},
		},
		Required: []string{"plan"},
	}).Closed()
}
