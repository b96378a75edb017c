package constants

// Health, ready and API prefix paths (class/user routes hang off PathAPI).
const (
	PathHealth = "/health"
	PathReady  = "/ready"
	PathAPI    = "/api"
)
