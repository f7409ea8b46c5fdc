package service

// Event types pushed to the live admin dashboard
const (
	EventResponseCreated = "response_created"
	EventResponseDeleted = "response_deleted"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToAdmins(msgType string, payload interface{})
}

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastToAdmins(string, interface{}) {}
