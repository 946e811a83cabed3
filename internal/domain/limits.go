package domain

import "time"

// Submission limits applied when the configuration leaves them out
const (
	DefaultMaxSubmissions = 3
	DefaultWindow         = time.Hour
)
