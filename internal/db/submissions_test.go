package db

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore round-trips through the codec so callers never share pointers
// with the stored copy.
type memStore struct {
	data    []byte
	saves   int
	failErr error
}

func (m *memStore) Load(context.Context) (*Snapshot, error) {
	if m.data == nil {
		return NewSnapshot(), nil
	}

	snap, _, err := decodeSnapshot(m.data)
	return snap, err
}

func (m *memStore) Save(_ context.Context, snap *Snapshot) error {
	if m.failErr != nil {
		return m.failErr
	}

	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	m.data = data
	m.saves++

	return nil
}

func TestSubmissionRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository(&memStore{})

	sub := sampleSubmission()
	sub.Status = StatusAccepted
	require.NoError(t, repo.Create(ctx, "REQ_77_1", sub))

	got, err := repo.Get(ctx, "REQ_77_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StatusPending, got.Status, "new submissions always start pending")
	assert.Equal(t, sub.StudentName, got.StudentName)
	assert.Equal(t, *sub.SubmitterHandle, *got.SubmitterHandle)
	assert.Equal(t, StatusAccepted, sub.Status, "caller's record is not modified")

	missing, err := repo.Get(ctx, "REQ_0_0")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSubmissionRepositoryCreateOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository(&memStore{})

	first := sampleSubmission()
	second := sampleSubmission()
	second.StudentName = "Second"

	require.NoError(t, repo.Create(ctx, "REQ_1_1", first))
	require.NoError(t, repo.Create(ctx, "REQ_1_1", second))

	got, err := repo.Get(ctx, "REQ_1_1")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.StudentName)
}

func TestSubmissionRepositorySetStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository(&memStore{})

	ok, err := repo.SetStatus(ctx, "REQ_0_0", StatusAccepted)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Create(ctx, "REQ_1_1", sampleSubmission()))

	ok, err = repo.SetStatus(ctx, "REQ_1_1", StatusRejected)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.Get(ctx, "REQ_1_1")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, got.Status)
}

func TestSubmissionRepositoryStatistics(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository(&memStore{})

	require.NoError(t, repo.IncrementStatistics(ctx, 3, 1))
	require.NoError(t, repo.IncrementStatistics(ctx, 0, 0))

	stats, err := repo.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, Statistics{AcceptedCount: 2, TotalCodes: 3, TotalEnglishCodes: 1}, stats)
	assert.Equal(t, 4, stats.Total())

	assert.Error(t, repo.IncrementStatistics(ctx, -1, 0))

	stats, err = repo.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.AcceptedCount)
}

func TestSubmissionRepositoryResolve(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	repo := NewSubmissionRepository(store)

	require.NoError(t, repo.Create(ctx, "REQ_1_1", sampleSubmission()))

	resolved, err := repo.Resolve(ctx, "REQ_1_1", StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, resolved.Status)

	stats, err := repo.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, Statistics{AcceptedCount: 1, TotalCodes: 3, TotalEnglishCodes: 1}, stats)

	saves := store.saves
	for _, outcome := range []Status{StatusAccepted, StatusRejected} {
		existing, err := repo.Resolve(ctx, "REQ_1_1", outcome)
		require.ErrorIs(t, err, ErrAlreadyResolved)

		var resolvedErr *AlreadyResolvedError
		require.True(t, errors.As(err, &resolvedErr))
		assert.Equal(t, StatusAccepted, resolvedErr.Status)
		assert.Equal(t, StatusAccepted, existing.Status)
	}
	assert.Equal(t, saves, store.saves, "conflicts must not write")

	stats, err = repo.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, Statistics{AcceptedCount: 1, TotalCodes: 3, TotalEnglishCodes: 1}, stats)
}

func TestSubmissionRepositoryResolveReject(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository(&memStore{})

	require.NoError(t, repo.Create(ctx, "REQ_1_1", sampleSubmission()))

	_, err := repo.Resolve(ctx, "REQ_1_1", StatusRejected)
	require.NoError(t, err)

	stats, err := repo.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, Statistics{}, stats)

	_, err = repo.Resolve(ctx, "REQ_1_1", StatusAccepted)
	var resolvedErr *AlreadyResolvedError
	require.ErrorAs(t, err, &resolvedErr)
	assert.Equal(t, StatusRejected, resolvedErr.Status)
}

func TestSubmissionRepositoryResolveErrors(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	repo := NewSubmissionRepository(store)

	_, err := repo.Resolve(ctx, "REQ_0_0", StatusAccepted)
	assert.ErrorIs(t, err, ErrSubmissionNotFound)

	require.NoError(t, repo.Create(ctx, "REQ_1_1", sampleSubmission()))

	_, err = repo.Resolve(ctx, "REQ_1_1", StatusPending)
	assert.Error(t, err)

	store.failErr = errors.New("write failed")
	_, err = repo.Resolve(ctx, "REQ_1_1", StatusAccepted)
	assert.ErrorContains(t, err, "write failed")

	store.failErr = nil
	got, err := repo.Get(ctx, "REQ_1_1")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status, "failed save leaves the submission pending")
}

func TestSubmissionRepositoryInvariant(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository(&memStore{})

	outcomes := []Status{StatusAccepted, StatusRejected, StatusAccepted, StatusAccepted, StatusRejected, StatusAccepted}
	for i, outcome := range outcomes {
		sub := sampleSubmission()
		sub.CodesCount = i + 2
		sub.EnglishCodesCount = i % 3
		id := fmt.Sprintf("REQ_%d_%d", i, i)

		require.NoError(t, repo.Create(ctx, id, sub))
		_, err := repo.Resolve(ctx, id, outcome)
		require.NoError(t, err)

		// double taps with the opposite outcome change nothing
		_, err = repo.Resolve(ctx, id, StatusRejected)
		require.ErrorIs(t, err, ErrAlreadyResolved)
	}

	stats, err := repo.GetStatistics(ctx)
	require.NoError(t, err)

	var accepted, codes, english int
	for i, outcome := range outcomes {
		got, err := repo.Get(ctx, fmt.Sprintf("REQ_%d_%d", i, i))
		require.NoError(t, err)
		require.Equal(t, outcome, got.Status)

		if got.Status == StatusAccepted {
			accepted++
			codes += got.CodesCount
			english += got.EnglishCodesCount
		}
	}

	assert.Equal(t, Statistics{AcceptedCount: accepted, TotalCodes: codes, TotalEnglishCodes: english}, stats)
}

func TestSubmissionRepositoryReadsLatestFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "database.json")

	storeA, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)
	storeB, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	writer := NewSubmissionRepository(storeA)
	reader := NewSubmissionRepository(storeB)

	require.NoError(t, writer.Create(ctx, "REQ_1_1", sampleSubmission()))
	_, err = writer.Resolve(ctx, "REQ_1_1", StatusAccepted)
	require.NoError(t, err)

	got, err := reader.Get(ctx, "REQ_1_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StatusAccepted, got.Status)

	stats, err := reader.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.AcceptedCount)
}
