package remote

// WebEvent is a single message sent to the remote
type WebEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// StatusUpdate is the payload of the "status" event
type StatusUpdate struct {
	Status string `json:"status"`
}

// ProgressUpdate is the payload of the "progressUpdate" event
type ProgressUpdate struct {
	Progress int `json:"progress"`
}

const (
	EventStatus   = "status"
	EventProgress = "progressUpdate"
)
