package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/felixgeelhaar/specflow/internal/backlog"
	"github.com/felixgeelhaar/specflow/internal/domain"
	sferrors "github.com/felixgeelhaar/specflow/internal/errors"
	"github.com/felixgeelhaar/specflow/internal/generator"
	"github.com/felixgeelhaar/specflow/internal/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var clock = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// backends returns a fresh instance of every backend kind.
func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()

	file, err := NewFileBackend(filepath.Join(dir, "specs.json"))
	require.NoError(t, err)

	sqlite, err := OpenSQLiteBackend(context.Background(), filepath.Join(dir, "specs.db"))
	require.NoError(t, err)

	return map[string]Backend{
		BackendFile:   file,
		BackendSQLite: sqlite,
		BackendMemory: NewMemoryBackend(),
	}
}

func newRepo(t *testing.T, b Backend) *Repository {
	t.Helper()
	repo := New(b,
		WithLogger(log.Discard()),
		WithIdentity(generator.NewSequentialIdentity("saved", clock)),
	)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func spec(id, goal string) *backlog.Spec {
	return &backlog.Spec{
		ID:          id,
		CreatedAt:   clock,
		Template:    domain.TemplateWeb,
		Goal:        goal,
		FeatureName: goal,
		Stories: []backlog.Item{
			{ID: id + "-s1", Type: domain.ItemTypeStory, Title: "story", Priority: domain.PriorityHigh},
		},
		Tasks: []backlog.Item{
			{ID: id + "-t1", Type: domain.ItemTypeTask, Title: "task", Priority: domain.PriorityHigh},
		},
		Risks: []backlog.Risk{{ID: id + "-r1", Type: domain.RiskAssumption, Text: "risk"}},
	}
}

func ids(specs []*backlog.Spec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.ID
	}
	return out
}

func TestRepository_Backends(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t, b)

			got, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, got, "empty store lists nothing")

			for i := 1; i <= 6; i++ {
				_, err := repo.Save(ctx, spec(fmt.Sprintf("spec-%d", i), fmt.Sprintf("goal %d", i)))
				require.NoError(t, err)
			}

			got, err = repo.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"spec-6", "spec-5", "spec-4", "spec-3", "spec-2"}, ids(got))

			found, err := repo.Get(ctx, "spec-4")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "goal 4", found.Goal)
			assert.Len(t, found.Tasks, 1)

			missing, err := repo.Get(ctx, "spec-1")
			require.NoError(t, err)
			assert.Nil(t, missing, "evicted spec is gone")

			goal := "goal four, revised"
			updated, err := repo.Update(ctx, "spec-4", backlog.Patch{Goal: &goal})
			require.NoError(t, err)
			assert.Equal(t, goal, updated[2].Goal)
			assert.Equal(t, "goal 4", updated[2].FeatureName, "unpatched fields are kept")

			remaining, err := repo.Delete(ctx, "spec-5")
			require.NoError(t, err)
			assert.Equal(t, []string{"spec-6", "spec-4", "spec-3", "spec-2"}, ids(remaining))
		})
	}
}

func TestRepository_SaveAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, NewMemoryBackend())

	s := spec("", "anonymous")
	s.CreatedAt = time.Time{}

	specs, err := repo.Save(ctx, s)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "saved-1", specs[0].ID)
	assert.Equal(t, clock, specs[0].CreatedAt)
	assert.Empty(t, s.ID, "caller's spec is not mutated")
}

func TestRepository_SaveKeepsExistingIdentity(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, NewMemoryBackend())

	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	s := spec("keep-me", "goal")
	s.CreatedAt = created

	specs, err := repo.Save(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "keep-me", specs[0].ID)
	assert.True(t, created.Equal(specs[0].CreatedAt))
}

func TestRepository_UpdateUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	repo := newRepo(t, b)

	_, err := repo.Save(ctx, spec("a", "goal a"))
	require.NoError(t, err)
	before, err := b.Read(ctx, Namespace)
	require.NoError(t, err)

	goal := "changed"
	specs, err := repo.Update(ctx, "zzz", backlog.Patch{Goal: &goal})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(specs))

	after, err := b.Read(ctx, Namespace)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRepository_ContentPatchRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, NewMemoryBackend())

	_, err := repo.Save(ctx, spec("a", "goal"))
	require.NoError(t, err)

	stored, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	edited, ok := stored.WithItemDeleted("a-s1")
	require.True(t, ok)

	_, err = repo.Update(ctx, "a", backlog.ContentPatch(edited))
	require.NoError(t, err)

	reloaded, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Stories)
	assert.Len(t, reloaded.Tasks, 1)
}

func TestRepository_CorruptDataDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "specs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	b, err := NewFileBackend(path)
	require.NoError(t, err)
	repo := newRepo(t, b)

	specs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, specs)

	// the next save replaces the corrupt document
	_, err = repo.Save(ctx, spec("fresh", "goal"))
	require.NoError(t, err)
	specs, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, ids(specs))
}

func TestRepository_WrongShapeDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Write(ctx, Namespace, []byte(`{"id":"not-a-list"}`)))

	specs, err := newRepo(t, b).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestRepository_WriteFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	repo := newRepo(t, NewMemoryBackend())
	cancel()

	_, err := repo.Save(ctx, spec("a", "goal"))
	require.Error(t, err)
	assert.True(t, sferrors.HasCode(err, sferrors.ErrCodeStoreWriteFailed))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileBackend_KeepsOtherNamespaces(t *testing.T) {
	ctx := context.Background()
	b, err := NewFileBackend(filepath.Join(t.TempDir(), "nested", "store.json"))
	require.NoError(t, err)

	require.NoError(t, b.Write(ctx, "other", []byte(`{"keep":true}`)))
	require.NoError(t, b.Write(ctx, Namespace, []byte(`[]`)))

	other, err := b.Read(ctx, "other")
	require.NoError(t, err)
	assert.JSONEq(t, `{"keep":true}`, string(other))

	absent, err := b.Read(ctx, "nothing")
	require.NoError(t, err)
	assert.Nil(t, absent)

	assert.Error(t, b.Write(ctx, Namespace, []byte("not json")))
}

func TestSQLiteBackend_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "specs.db")

	b, err := OpenSQLiteBackend(ctx, path)
	require.NoError(t, err)
	require.NoError(t, b.Write(ctx, Namespace, []byte(`["a"]`)))
	require.NoError(t, b.Write(ctx, Namespace, []byte(`["b"]`)))
	require.NoError(t, b.Close())

	reopened, err := OpenSQLiteBackend(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Read(ctx, Namespace)
	require.NoError(t, err)
	assert.Equal(t, `["b"]`, string(got))
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, kind := range []string{BackendFile, BackendSQLite, BackendMemory} {
		b, err := OpenBackend(ctx, kind, filepath.Join(dir, "store-"+kind))
		require.NoError(t, err, kind)
		require.NoError(t, b.Close())
	}

	_, err := OpenBackend(ctx, "redis", dir)
	assert.Error(t, err)
}
