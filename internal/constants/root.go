package constants

const (
	AppName           = "planme"
	DefaultConfigPath = "~/.config/planme/config.toml"
	Version           = "v0.1.0"

	// Mood defaults
	DefaultMood = "neutral"

	// Document store layout
	UsersCollection = "users"
	MoodLogsField   = "moodLogs"

	// Log file constants
	LogFileName   = "planme.log"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28
)
