// Package notify delivers committed occupancy events to external listeners.
package notify

import (
	"context"
	"errors"

	"github.com/jascaniojs/parking-business-api/internal/domain"
)

type Publisher interface {
	Publish(ctx context.Context, event domain.OccupancyEvent) error
}

// Fanout publishes every event to all of its publishers and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event domain.OccupancyEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
