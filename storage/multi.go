package storage

import (
	"context"
	"errors"

	"airbnb-rooms-scraper/models"
)

// MultiSink fans a result out to several sinks. Every sink is tried; the
// errors are joined.
type MultiSink []Sink

func (m MultiSink) Save(ctx context.Context, runID string, result *models.BatchResult) error {
	var errs []error
	for _, s := range m {
		if err := s.Save(ctx, runID, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
