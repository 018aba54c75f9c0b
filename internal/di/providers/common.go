package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second
)

// Version is the server version reported by /health and metrics. Release
// builds set it with -ldflags "-X".
var Version = "dev"
