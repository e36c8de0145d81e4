package publishers

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
)

// Report summarizes one dispatch run.
type Report struct {
	Delivered int
	Failed    int
}

// Dispatch sends every event to every publisher. Delivery keeps going after a
// failure; all failures are returned combined.
func Dispatch(ctx context.Context, pubs []Publisher, events []Event, log Logger) (Report, error) {
	log = ensureLogger(log)

	var (
		rep  Report
		errs error
	)
	for _, evt := range events {
		for _, pub := range pubs {
			if err := ctx.Err(); err != nil {
				return rep, multierr.Append(errs, err)
			}
			if err := pub.Publish(ctx, evt); err != nil {
				rep.Failed++
				errs = multierr.Append(errs, fmt.Errorf("publisher %s: %w", pub.ID(), err))
				log.WarnObj("event delivery failed", "publish_error", map[string]any{
					"publisher_id": pub.ID(),
					"event_id":     evt.ID,
					"url":          evt.Article.URL,
					"error":        err.Error(),
				})
				continue
			}
			rep.Delivered++
		}
	}

	log.InfoObj("events dispatched", "publish_done", map[string]any{
		"events":     len(events),
		"publishers": len(pubs),
		"delivered":  rep.Delivered,
		"failed":     rep.Failed,
	})
	return rep, errs
}
