package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/specflow/internal/backlog"
	"github.com/felixgeelhaar/specflow/internal/domain"
	sferrors "github.com/felixgeelhaar/specflow/internal/errors"
	"github.com/felixgeelhaar/specflow/internal/generator"
	"github.com/felixgeelhaar/specflow/internal/log"
	"github.com/felixgeelhaar/specflow/internal/store"
)

var clock = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	identity := generator.NewSequentialIdentity("id", clock)
	repo := store.New(store.NewMemoryBackend(),
		store.WithLogger(log.Discard()),
		store.WithIdentity(identity),
	)
	t.Cleanup(func() { _ = repo.Close() })

	return &Service{
		Engine:     generator.NewEngine(identity),
		Repository: repo,
		Logger:     log.Discard(),
	}
}

func dashboard() generator.Input {
	return generator.Input{
		Goal:        "Build a dashboard for managers",
		TargetUsers: "managers",
		Constraints: "GDPR",
		Template:    domain.TemplateWeb,
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name string
		in   generator.Input
		code sferrors.ErrorCode
	}{
		{"missing goal", generator.Input{TargetUsers: "admins"}, sferrors.ErrCodeGoalRequired},
		{"whitespace goal", generator.Input{Goal: "  \t", TargetUsers: "admins"}, sferrors.ErrCodeGoalRequired},
		{"missing users", generator.Input{Goal: "Ship it"}, sferrors.ErrCodeUsersRequired},
		{"whitespace users", generator.Input{Goal: "Ship it", TargetUsers: "\n"}, sferrors.ErrCodeUsersRequired},
		{"unknown template", generator.Input{Goal: "Ship it", TargetUsers: "admins", Template: "desktop"}, sferrors.ErrCodeInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateInput(tt.in)
			require.Error(t, err)
			assert.True(t, sferrors.HasCode(err, tt.code), "got %v", err)
		})
	}

	t.Run("keeps padding", func(t *testing.T) {
		in := generator.Input{Goal: " Ship it ", TargetUsers: " admins", Constraints: " none "}
		got, err := ValidateInput(in)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	})
}

func TestService_GenerateEchoesRawInput(t *testing.T) {
	svc := newService(t)
	in := generator.Input{
		Goal:        "  Export invoices.\n",
		TargetUsers: " accountants ",
		Template:    domain.TemplateWeb,
	}

	result, err := svc.Generate(context.Background(), in, GenerateOptions{NoSave: true})
	require.NoError(t, err)

	spec := result.Spec
	assert.Equal(t, in.Goal, spec.Goal)
	assert.Equal(t, in.TargetUsers, spec.TargetUsers)
	assert.Equal(t, in.Goal, spec.FeatureName)
	require.NotEmpty(t, spec.Stories)
	assert.Contains(t, spec.Stories[0].Title, "I want to   export invoices.\n so that")
}

func TestService_GenerateSaves(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	result, err := svc.Generate(ctx, dashboard(), GenerateOptions{})
	require.NoError(t, err)
	require.True(t, result.Saved)
	require.Len(t, result.History, 1)
	assert.Equal(t, result.Spec.ID, result.History[0].ID)

	stories, tasks, risks := result.Spec.Counts()
	assert.NotZero(t, stories)
	assert.NotZero(t, tasks)
	assert.NotZero(t, risks)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, result.Spec.Fingerprint, listed[0].Fingerprint)
}

func TestService_GenerateNoSave(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	result, err := svc.Generate(ctx, dashboard(), GenerateOptions{NoSave: true})
	require.NoError(t, err)
	assert.False(t, result.Saved)
	assert.Nil(t, result.History)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestService_GenerateDefaultsTemplate(t *testing.T) {
	in := dashboard()
	in.Template = ""

	result, err := newService(t).Generate(context.Background(), in, GenerateOptions{NoSave: true})
	require.NoError(t, err)
	assert.Equal(t, domain.TemplateWeb, result.Spec.Template)
}

func TestService_GenerateRejectsInvalidInput(t *testing.T) {
	svc := newService(t)

	_, err := svc.Generate(context.Background(), generator.Input{Goal: "x"}, GenerateOptions{})
	assert.True(t, sferrors.HasCode(err, sferrors.ErrCodeUsersRequired))

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestService_GenerateDelayCancelled(t *testing.T) {
	svc := newService(t)
	svc.Delay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Generate(ctx, dashboard(), GenerateOptions{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestService_GenerateWaitsDelay(t *testing.T) {
	svc := newService(t)
	svc.Delay = 20 * time.Millisecond

	result, err := svc.Generate(context.Background(), dashboard(), GenerateOptions{NoSave: true})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Duration, svc.Delay)
}

func TestService_GetByPrefix(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	result, err := svc.Generate(ctx, dashboard(), GenerateOptions{})
	require.NoError(t, err)
	id := result.Spec.ID

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	got, err = svc.Get(ctx, id[:len(id)-1])
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = svc.Get(ctx, "nope")
	assert.True(t, sferrors.HasCode(err, sferrors.ErrCodeSpecNotFound))

	_, err = svc.Get(ctx, "")
	assert.True(t, sferrors.IsNotFound(err))
}

func TestService_GetAmbiguousPrefix(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for i := 0; i < 2; i++ {
		_, err := svc.Generate(ctx, dashboard(), GenerateOptions{})
		require.NoError(t, err)
	}

	_, err := svc.Get(ctx, "id-")
	require.Error(t, err)
	assert.True(t, sferrors.HasCode(err, sferrors.ErrCodeInvalidValue))
}

func TestService_ItemEdits(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	result, err := svc.Generate(ctx, dashboard(), GenerateOptions{})
	require.NoError(t, err)
	spec := result.Spec
	story := spec.Stories[0]
	task := spec.Tasks[0]

	title := "Renamed story"
	low := domain.PriorityLow
	updated, err := svc.UpdateItem(ctx, spec.ID, story.ID, backlog.ItemPatch{Title: &title, Priority: &low})
	require.NoError(t, err)
	got, ok := updated.FindItem(story.ID)
	require.True(t, ok)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, domain.PriorityLow, got.Priority)

	stored, err := svc.Get(ctx, spec.ID)
	require.NoError(t, err)
	assert.True(t, stored.Modified())

	third := spec.Tasks[2]
	moved, err := svc.MoveItem(ctx, spec.ID, third.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, third.ID, moved.Tasks[0].ID)
	assert.Equal(t, task.ID, moved.Tasks[1].ID)
	assert.Len(t, moved.Stories, len(spec.Stories))
	assert.Len(t, moved.Tasks, len(spec.Tasks))

	deleted, err := svc.DeleteItem(ctx, spec.ID, task.ID)
	require.NoError(t, err)
	_, ok = deleted.FindItem(task.ID)
	assert.False(t, ok)
	assert.Len(t, deleted.Tasks, len(spec.Tasks)-1)

	_, err = svc.DeleteItem(ctx, spec.ID, task.ID)
	assert.True(t, sferrors.HasCode(err, sferrors.ErrCodeItemNotFound))
}

func TestService_MoveOntoSelfIsNoop(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	result, err := svc.Generate(ctx, dashboard(), GenerateOptions{})
	require.NoError(t, err)
	spec := result.Spec
	first := spec.Stories[0].ID

	got, err := svc.MoveItem(ctx, spec.ID, first, first)
	require.NoError(t, err)
	assert.False(t, got.Modified())
}

func TestService_UpdateRisk(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	result, err := svc.Generate(ctx, dashboard(), GenerateOptions{})
	require.NoError(t, err)
	spec := result.Spec
	risk := spec.Risks[0]

	updated, err := svc.UpdateRisk(ctx, spec.ID, risk.ID, "Revised assumption")
	require.NoError(t, err)
	got, ok := updated.FindRisk(risk.ID)
	require.True(t, ok)
	assert.Equal(t, "Revised assumption", got.Text)

	_, err = svc.UpdateRisk(ctx, spec.ID, "missing", "x")
	assert.True(t, sferrors.HasCode(err, sferrors.ErrCodeRiskNotFound))

	_, err = svc.UpdateRisk(ctx, "missing", risk.ID, "x")
	assert.True(t, sferrors.HasCode(err, sferrors.ErrCodeSpecNotFound))
}

func TestService_ReplaceAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	result, err := svc.Generate(ctx, dashboard(), GenerateOptions{})
	require.NoError(t, err)

	edited, ok := result.Spec.WithItemDeleted(result.Spec.Stories[0].ID)
	require.True(t, ok)
	_, err = svc.Replace(ctx, edited)
	require.NoError(t, err)

	stored, err := svc.Get(ctx, result.Spec.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Stories, len(result.Spec.Stories)-1)

	id, err := svc.Delete(ctx, result.Spec.ID[:4])
	require.NoError(t, err)
	assert.Equal(t, result.Spec.ID, id)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
