package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyResolved    = errors.New("submission already resolved")
)

// AlreadyResolvedError carries the status a submission was resolved to.
type AlreadyResolvedError struct {
	Status Status
}

func (e *AlreadyResolvedError) Error() string {
	return fmt.Sprintf("submission already %s", e.Status)
}

func (e *AlreadyResolvedError) Is(target error) bool {
	return target == ErrAlreadyResolved
}

// SubmissionRepository runs every operation as a full load-mutate-save
// cycle against the store. The mutex keeps cycles from interleaving.
type SubmissionRepository struct {
	store Store
	mu    sync.Mutex
}

func NewSubmissionRepository(store Store) *SubmissionRepository {
	return &SubmissionRepository{
		store: store,
	}
}

// Create stores sub as pending under id, replacing any record with that id.
func (r *SubmissionRepository) Create(ctx context.Context, id string, sub *Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("SubmissionRepository.Create: %w", err)
	}

	record := *sub
	record.Status = StatusPending
	snap.Requests[id] = &record

	if err := r.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("SubmissionRepository.Create: %w", err)
	}

	return nil
}

// Get returns nil without an error when id is unknown.
func (r *SubmissionRepository) Get(ctx context.Context, id string) (*Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("SubmissionRepository.Get: %w", err)
	}

	sub, ok := snap.Requests[id]
	if !ok {
		return nil, nil
	}

	return sub, nil
}

// SetStatus overwrites the status unconditionally and reports whether id
// exists. Callers enforce the pending-only rule; Resolve does both.
func (r *SubmissionRepository) SetStatus(ctx context.Context, id string, status Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("SubmissionRepository.SetStatus: %w", err)
	}

	sub, ok := snap.Requests[id]
	if !ok {
		return false, nil
	}
	sub.Status = status

	if err := r.store.Save(ctx, snap); err != nil {
		return false, fmt.Errorf("SubmissionRepository.SetStatus: %w", err)
	}

	return true, nil
}

func (r *SubmissionRepository) IncrementStatistics(ctx context.Context, codesCount, englishCodesCount int) error {
	if codesCount < 0 || englishCodesCount < 0 {
		return fmt.Errorf("SubmissionRepository.IncrementStatistics: negative amount %d/%d", codesCount, englishCodesCount)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("SubmissionRepository.IncrementStatistics: %w", err)
	}

	addAccepted(&snap.Statistics, codesCount, englishCodesCount)

	if err := r.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("SubmissionRepository.IncrementStatistics: %w", err)
	}

	return nil
}

func (r *SubmissionRepository) GetStatistics(ctx context.Context) (Statistics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.store.Load(ctx)
	if err != nil {
		return Statistics{}, fmt.Errorf("SubmissionRepository.GetStatistics: %w", err)
	}

	return snap.Statistics, nil
}

// Resolve moves a pending submission to outcome and, for acceptance, adds
// its own counts to the statistics, all in one save. It fails with
// ErrSubmissionNotFound or an *AlreadyResolvedError without writing.
func (r *SubmissionRepository) Resolve(ctx context.Context, id string, outcome Status) (*Submission, error) {
	if !outcome.Terminal() {
		return nil, fmt.Errorf("SubmissionRepository.Resolve: %q is not a resolution", outcome)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("SubmissionRepository.Resolve: %w", err)
	}

	sub, ok := snap.Requests[id]
	if !ok {
		return nil, fmt.Errorf("SubmissionRepository.Resolve: %s: %w", id, ErrSubmissionNotFound)
	}

	if sub.Status != StatusPending {
		return sub, fmt.Errorf("SubmissionRepository.Resolve: %s: %w", id, &AlreadyResolvedError{Status: sub.Status})
	}

	sub.Status = outcome
	if outcome == StatusAccepted {
		addAccepted(&snap.Statistics, sub.CodesCount, sub.EnglishCodesCount)
	}

	if err := r.store.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("SubmissionRepository.Resolve: %w", err)
	}

	return sub, nil
}

func addAccepted(stats *Statistics, codesCount, englishCodesCount int) {
	stats.AcceptedCount++
	stats.TotalCodes += codesCount
	stats.TotalEnglishCodes += englishCodesCount
}
