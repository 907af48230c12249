package service

import (
	"context"
	"strconv"
	"time"

	"github.com/secondecom/eshop/internal/events"
	"github.com/secondecom/eshop/internal/logging"
)

const publishTimeout = 5 * time.Second

// emit publishes after the request's work is committed. Failures are logged
// and never reach the caller.
func emit(ctx context.Context, pub events.Publisher, topic string, key uint, event map[string]any) {
	if pub == nil {
		return
	}
	l := logging.FromContext(ctx)

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event["at"] = time.Now().UTC().Format(time.RFC3339)
	if err := pub.Publish(pubCtx, topic, strconv.FormatUint(uint64(key), 10), event); err != nil {
		l.Warn("event_publish_failed", "topic", topic, "type", event["type"], "error", err)
	}
}
