package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/julianstephens/planme/internal/models"
)

// MoodService stores and lists per-user mood logs.
type MoodService interface {
	AddMood(ctx context.Context, log models.MoodLog) error
	ListMoods(ctx context.Context, userID string) ([]models.MoodEntry, error)
}

type moodsHandler struct {
	moods MoodService
}

type moodLogBody struct {
	UserID *string `json:"user_id"`
	Date   *string `json:"date"`
	Mood   *string `json:"mood"`
}

// NewMoods builds the mood-log service.
func NewMoods(moods MoodService) *Server {
	s := newServer("moods")
	h := &moodsHandler{moods: moods}

	s.echo.GET("/", h.root)
	s.echo.POST("/add-mood/", h.addMood)
	s.echo.POST("/add-mood", h.addMood)
	s.echo.GET("/get-moods/:user_id", h.getMoods)

	return s
}

func (h *moodsHandler) root(c echo.Context) error {
	return c.JSON(http.StatusOK, Message{Message: "Mood service is running"})
}

func (h *moodsHandler) addMood(c echo.Context) error {
	var body moodLogBody
	if err := c.Bind(&body); err != nil {
		return unprocessable("invalid request body: %v", bindMessage(err))
	}
	switch {
	case body.UserID == nil:
		return unprocessable("user_id: field required")
	case body.Date == nil:
		return unprocessable("date: field required")
	case body.Mood == nil:
		return unprocessable("mood: field required")
	case *body.UserID == "":
		return unprocessable("user_id: must not be empty")
	case *body.Date == "":
		return unprocessable("date: must not be empty")
	}

	log := models.MoodLog{UserID: *body.UserID, Date: *body.Date, Mood: *body.Mood}
	if err := h.moods.AddMood(c.Request().Context(), log); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Message{Message: "Mood log added successfully."})
}

func (h *moodsHandler) getMoods(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return unprocessable("user_id: must not be empty")
	}

	entries, err := h.moods.ListMoods(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
