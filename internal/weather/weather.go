// Package weather defines the external weather lookup capability.
//
// The export engine never fetches weather itself; callers inject an
// implementation. Any lookup error is treated as "no weather" upstream.
package weather

import (
	"context"
	"time"

	"github.com/craigeley/obsidian-ios-memories-companion/internal/model"
)

// Lookup resolves a weather observation for a coordinate at a point in time.
// A (nil, nil) return means no observation is available.
type Lookup interface {
	Current(ctx context.Context, coord model.Coordinate, at time.Time) (*model.WeatherObservation, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, coord model.Coordinate, at time.Time) (*model.WeatherObservation, error)

func (f LookupFunc) Current(ctx context.Context, coord model.Coordinate, at time.Time) (*model.WeatherObservation, error) {
	return f(ctx, coord, at)
}

// Static always returns a fixed observation, for callers that already know
// the conditions (e.g. supplied on the command line).
type Static struct {
	Obs model.WeatherObservation
}

func (s Static) Current(ctx context.Context, coord model.Coordinate, at time.Time) (*model.WeatherObservation, error) {
	obs := s.Obs
	return &obs, nil
}

// Nop never returns an observation.
type Nop struct{}

func (Nop) Current(ctx context.Context, coord model.Coordinate, at time.Time) (*model.WeatherObservation, error) {
	return nil, nil
}
