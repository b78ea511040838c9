package constants

// Context keys
const (
	ContextKeyUser = "user"
)

// Authentication
const (
	BearerPrefix = "Bearer "
	TokenPrefix  = "simulated_jwt_token_"
)

// Public paths that bypass the bearer check for every method.
const (
	PathLogin    = "/login"
	PathRegister = "/register"
)

// New user defaults
const (
	DefaultHourlyRate    = 75
	DefaultCurrency      = "USD"
	DefaultTheme         = "light"
	DefaultInvoicePrefix = "INV-"
)

// DefaultProjectStatus is applied when a project is created without a status.
const DefaultProjectStatus = "In Progress"
