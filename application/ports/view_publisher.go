package ports

// ViewMessage is a single notification pushed to a session's subscribed
// clients: a refresh request, a stats broadcast, or an interaction target.
type ViewMessage struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload,omitempty"`
}

// View message kinds.
const (
	ViewMessageUpdate    = "update"
	ViewMessageStats     = "stats"
	ViewMessageMouseOver = "mouse_over"
	ViewMessageSelected  = "selected"
)

// ViewPublisher delivers view messages to every client subscribed to a
// session. Delivery is fire-and-forget; slow or absent subscribers must not
// block the session loop.
type ViewPublisher interface {
	Publish(sessionID string, msg ViewMessage)
}
