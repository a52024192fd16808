package types

const (
	ContextUserKey      = "user"
	ContextRequestIDKey = "request_id"

	RequestIDHeader = "X-Request-ID"
)

const (
	GoalStatusActive   = "active"
	GoalStatusAchieved = "achieved"
	GoalStatusMissed   = "missed"
)

// Websocket message types.
const (
	MessageConnected = "connected"
	MessageRefresh   = "refresh"
)

// DateLayout is the calendar date format accepted and produced for scores.
const DateLayout = "2006-01-02"
