package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shindong96/atdd-subway-path/internal/domain"
)

// TaskError accumulates the errors of a bulk load.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors:", len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString(" ")
		b.WriteString(err.Error())
		b.WriteString(";")
	}
	return b.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// SeedRepository is the write side of the network store used for seeding.
type SeedRepository interface {
	UpsertStation(ctx context.Context, station domain.Station) error
	UpsertSection(ctx context.Context, section domain.Section) error
}

// BulkLoader writes a whole network into the store using a worker pool.
type BulkLoader struct {
	repo    SeedRepository
	workers int
}

// NewBulkLoader creates a new BulkLoader instance with the provided concurrency.
func NewBulkLoader(repo SeedRepository, workers int) *BulkLoader {
	if workers <= 0 {
		workers = 4
	}
	return &BulkLoader{
		repo:    repo,
		workers: workers,
	}
}

// LoadNetwork stores all stations, then all sections. Sections are only
// attempted once every station write has succeeded, since a section needs
// both of its endpoints.
func (bl *BulkLoader) LoadNetwork(ctx context.Context, stations []domain.Station, sections []domain.Section) error {
	if err := bl.LoadStations(ctx, stations); err != nil {
		return fmt.Errorf("load stations: %w", err)
	}
	if err := bl.LoadSections(ctx, sections); err != nil {
		return fmt.Errorf("load sections: %w", err)
	}
	return nil
}

// LoadStations upserts stations concurrently.
func (bl *BulkLoader) LoadStations(ctx context.Context, stations []domain.Station) error {
	return bl.run(ctx, len(stations), func(idx int) error {
		return bl.repo.UpsertStation(ctx, stations[idx])
	})
}

// LoadSections upserts sections concurrently.
func (bl *BulkLoader) LoadSections(ctx context.Context, sections []domain.Section) error {
	return bl.run(ctx, len(sections), func(idx int) error {
		return bl.repo.UpsertSection(ctx, sections[idx])
	})
}

func (bl *BulkLoader) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < bl.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	var taskErr TaskError
	for err := range errCh {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return taskErr.asError()
}
