package port

import "context"

// EventListenerPort - фоновый процесс, который живет, пока жив контекст
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
