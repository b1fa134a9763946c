package models

import "github.com/julianstephens/planme/internal/constants"

// PlanRequest is what a caller sends to have a day planned.
// FreeTimeBlocks are ISO-8601 datetimes; their format and order are not checked.
type PlanRequest struct {
	Goals          []string `json:"goals"`
	FreeTimeBlocks []string `json:"free_time_blocks"`
	Mood           string   `json:"mood"`
}

// WithDefaults returns a copy of the request with an empty mood set to "neutral".
func (r PlanRequest) WithDefaults() PlanRequest {
	if r.Mood == "" {
		r.Mood = constants.DefaultMood
	}
	return r
}

// Task is one scheduled item in a plan
type Task struct {
	Title     string  `json:"title"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// PlanResponse is the ordered list of tasks produced for a request.
// It is built once per request and never persisted.
type PlanResponse struct {
	Plan []Task `json:"plan"`
}
