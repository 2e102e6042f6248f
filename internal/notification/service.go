package notification

import (
	"context"
	"sync"
	"time"

	"github.com/salonhq/scheduler-api/pkg/logger"
)

// Notification is one dashboard toast.
type Notification struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Service surfaces non-blocking notifications to the staff dashboard. The
// core fires and forgets; the dashboard polls the recent buffer.
type Service struct {
	logger *logger.Logger

	mu     sync.Mutex
	recent []Notification
	limit  int
}

func NewService(log *logger.Logger) *Service {
	return &Service{logger: log, limit: 50}
}

func (s *Service) Notify(ctx context.Context, level, message string) {
	n := Notification{Level: level, Message: message, At: time.Now()}

	s.mu.Lock()
	s.recent = append(s.recent, n)
	if len(s.recent) > s.limit {
		s.recent = s.recent[len(s.recent)-s.limit:]
	}
	s.mu.Unlock()

	switch level {
	case "warning":
		s.logger.Warn(message)
	default:
		s.logger.Info(message)
	}
}

// Recent returns the latest notifications, newest last.
func (s *Service) Recent() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.recent))
	copy(out, s.recent)
	return out
}
