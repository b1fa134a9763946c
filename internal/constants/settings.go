package constants

const (
	// Provider names
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"

	// Credential environment variables
	EnvOpenRouterAPIKey = "OPENROUTER_API_KEY"
	EnvGeminiAPIKey     = "GEMINI_API_KEY"

	// Override environment variables
	EnvPlannerAddr     = "PLANME_PLANNER_ADDR"
	EnvPlannerProvider = "PLANME_PROVIDER"
	EnvPlannerModel    = "PLANME_MODEL"
	EnvPlannerBaseURL  = "PLANME_BASE_URL"
	EnvMoodsAddr       = "PLANME_MOODS_ADDR"
	EnvMoodsStore      = "PLANME_STORE"
	EnvMoodsDatabase   = "PLANME_DATABASE"
	EnvLogDir          = "PLANME_LOG_DIR"

	// Default planner settings
	DefaultPlannerAddr   = ":8000"
	DefaultProvider      = ProviderOpenRouter
	DefaultBaseURL       = "https://openrouter.ai/api/v1"
	DefaultModel         = "openai/gpt-4o"
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultTemperature   = 0.0
	DefaultMaxTokens     = 300
	DefaultSchemaName    = "plan_output"
	DefaultStrictSchemas = true

	// Default mood service settings
	DefaultMoodsAddr = ":8001"
	DefaultStore     = "mongodb://localhost:27017"
	DefaultDatabase  = "planme"
)
