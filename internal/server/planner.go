package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/julianstephens/planme/internal/models"
)

// PlanGenerator turns a plan request into a plan.
type PlanGenerator interface {
	Generate(ctx context.Context, req models.PlanRequest) (*models.PlanResponse, error)
}

type plannerHandler struct {
	planner PlanGenerator
}

// planRequestBody distinguishes absent fields from empty ones.
type planRequestBody struct {
	Goals          []string `json:"goals"`
	FreeTimeBlocks []string `json:"free_time_blocks"`
	Mood           *string  `json:"mood"`
}

// NewPlanner builds the planning service.
func NewPlanner(planner PlanGenerator) *Server {
	s := newServer("planner")
	h := &plannerHandler{planner: planner}

	s.echo.GET("/", h.root)
	s.echo.POST("/generate_plan", h.generatePlan)

	return s
}

func (h *plannerHandler) root(c echo.Context) error {
	return c.JSON(http.StatusOK, Message{Message: "AI Planner is running"})
}

func (h *plannerHandler) generatePlan(c echo.Context) error {
	var body planRequestBody
	if err := c.Bind(&body); err != nil {
		return unprocessable("invalid request body: %v", bindMessage(err))
	}
	if body.Goals == nil {
		return unprocessable("goals: field required")
	}
	if body.FreeTimeBlocks == nil {
		return unprocessable("free_time_blocks: field required")
	}

	req := models.PlanRequest{
		Goals:          body.Goals,
		FreeTimeBlocks: body.FreeTimeBlocks,
	}
	if body.Mood != nil {
		req.Mood = *body.Mood
	}

	plan, err := h.planner.Generate(c.Request().Context(), req.WithDefaults())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

func bindMessage(err error) interface{} {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Message
	}
	return err
}
