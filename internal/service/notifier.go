package service

// Notifier pushes domain events to connected clients. The websocket hub
// implements it; a no-op implementation is fine for tests.
type Notifier interface {
	Notify(event string, payload any)
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, any) {}

// NopNotifier returns a Notifier that discards every event.
func NopNotifier() Notifier { return noopNotifier{} }
