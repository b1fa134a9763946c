package models

// MoodLog is a single mood entry submitted for a user
type MoodLog struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"` // expected as YYYY-MM-DD, not validated
	Mood   string `json:"mood"`
}

// MoodValue is what gets stored under a date key in the user document
type MoodValue struct {
	Mood string `json:"mood" bson:"mood"`
}

// MoodEntry is a (date, mood) pair as returned when listing a user's moods
type MoodEntry struct {
	Date string `json:"date"`
	Mood string `json:"mood"`
}

// UserDocument is the per-user record held by the document store.
// MoodLogs maps a date string to the mood recorded for it.
type UserDocument struct {
	UserID   string               `json:"user_id" bson:"_id,omitempty"`
	MoodLogs map[string]MoodValue `json:"moodLogs" bson:"moodLogs,omitempty"`
}
