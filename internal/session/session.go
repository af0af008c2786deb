package session

import "time"

// Session represents one build session being intercepted. A session pins the
// interception log file that every wrapped build-tool launch appends to
// until the session is stopped.
type Session struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	WorkDir   string    `json:"work_dir"`
	// LogFile is the destination interception log for this session, the
	// value the caller must export as CLADE_INTERCEPT before building.
	LogFile string `json:"log_file"`
}
