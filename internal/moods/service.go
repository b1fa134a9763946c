package moods

import (
	"context"
	"sort"

	"github.com/julianstephens/planme/internal/models"
	"github.com/julianstephens/planme/internal/storage"
)

type Service struct {
	store storage.DocumentStore
}

func NewService(store storage.DocumentStore) *Service {
	return &Service{store: store}
}

// AddMood records log.Mood for log.Date, replacing any earlier mood for that date.
func (s *Service) AddMood(ctx context.Context, log models.MoodLog) error {
	return s.store.Upsert(ctx, log.UserID, log.Date, models.MoodValue{Mood: log.Mood})
}

// ListMoods returns the user's moods ordered by date string. Unknown users
// get an empty, non-nil slice.
//
// Ordering is lexicographic, which matches calendar order only for
// zero-padded YYYY-MM-DD dates.
func (s *Service) ListMoods(ctx context.Context, userID string) ([]models.MoodEntry, error) {
	doc, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil || len(doc.MoodLogs) == 0 {
		return []models.MoodEntry{}, nil
	}

	entries := make([]models.MoodEntry, 0, len(doc.MoodLogs))
	for date, value := range doc.MoodLogs {
		entries = append(entries, models.MoodEntry{Date: date, Mood: value.Mood})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	return entries, nil
}
