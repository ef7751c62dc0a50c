package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/service"
)

const defaultQueueSize = 256

// NotificationWorker moves event delivery off the request path. Services
// publish into a bounded queue and a single goroutine hands events to the
// underlying dispatcher in order.
type NotificationWorker struct {
	inner  events.Dispatcher
	logger *zap.Logger
	queue  chan queued

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

type queued struct {
	ctx   context.Context
	event events.Event
}

var _ events.Dispatcher = (*NotificationWorker)(nil)

// NewNotificationWorker wraps inner. queueSize <= 0 uses a default.
func NewNotificationWorker(inner events.Dispatcher, logger *zap.Logger, queueSize int) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		inner:  inner,
		logger: logger,
		queue:  make(chan queued, queueSize),
		done:   make(chan struct{}),
	}
}

// StartNotificationWorker registers notification handlers and starts draining
// the queue until Close is called.
func StartNotificationWorker(w *NotificationWorker, notificationService *service.NotificationService) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	go w.run()
}

// Publish enqueues the event. When the queue is full the event is dropped and
// logged so a slow notifier never blocks a request.
func (w *NotificationWorker) Publish(ctx context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		w.logger.Warn("notification worker closed, dropping event", zap.String("event_id", event.ID))
		return nil
	}
	select {
	case w.queue <- queued{ctx: context.WithoutCancel(ctx), event: event}:
	default:
		w.logger.Warn("notification queue full, dropping event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
	return nil
}

// Subscribe registers on the underlying dispatcher.
func (w *NotificationWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.inner.Subscribe(eventType, handler)
}

// Close stops accepting work and waits for queued events to be delivered or
// for ctx to expire.
func (w *NotificationWorker) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *NotificationWorker) run() {
	defer close(w.done)
	for item := range w.queue {
		if err := w.inner.Publish(item.ctx, item.event); err != nil {
			w.logger.Warn("event delivery failed", zap.String("event_id", item.event.ID), zap.Error(err))
		}
	}
}
