package events

import (
	"context"
	"errors"
)

// MultiPublisher fans every event out to all publishers and joins their
// errors. A failing sink does not stop the others.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, routingKey, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
