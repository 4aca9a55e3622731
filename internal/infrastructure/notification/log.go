package notification

import (
	"context"
	"fmt"
	"sync"

	"healthlog/internal/pkg/logger"
)

// LogNotifier writes notifications to the application log. It is used when no
// push channel is configured.
type LogNotifier struct {
	log    logger.Logger
	mu     sync.Mutex
	active map[string]string
}

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log, active: make(map[string]string)}
}

// ShowNotification logs the notification and records it under key.
func (n *LogNotifier) ShowNotification(_ context.Context, key, title, body, deepLink string) error {
	n.mu.Lock()
	n.active[key] = title
	n.mu.Unlock()
	n.log.Info(fmt.Sprintf("NOTIFY [%s] %s: %s (open: %s)", key, title, body, deepLink))
	return nil
}

// CancelNotification forgets the notification under key.
func (n *LogNotifier) CancelNotification(_ context.Context, key string) error {
	n.mu.Lock()
	delete(n.active, key)
	n.mu.Unlock()
	return nil
}

// Active returns the keys currently shown.
func (n *LogNotifier) Active() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	keys := make([]string, 0, len(n.active))
	for k := range n.active {
		keys = append(keys, k)
	}
	return keys
}
