package cli

import (
	"time"

	"github.com/aretw0/envcheck/internal/logging"
)

// Options holds the flags shared by every command.
type Options struct {
	Dir   string
	Debug bool
	// LogFormat is "text" or "json".
	LogFormat logging.Format
	// RedisURL, when set, keeps reports in Redis (redis://host:port/db).
	RedisURL    string
	RedisPrefix string
	ReportTTL   time.Duration
	// ReportKey seals stored reports with AES-256 (hex or base64).
	ReportKey string
	NoColor   bool
}
