package domain

// Notification is a push event delivered over a user's live connection.
type Notification struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier pushes a notification to a user's live connection, if any.
// Delivery is fire-and-forget: a disconnected user misses the event.
type Notifier interface {
	Notify(userID string, n Notification)
}
