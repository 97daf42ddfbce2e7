package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// AllowedOrigins feeds both the CORS middleware and the websocket
// origin check. ALLOWED_ORIGINS extends the development defaults.
var AllowedOrigins = initAllowedOrigins()

func initAllowedOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		for _, origin := range strings.Split(allowedOrigins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
