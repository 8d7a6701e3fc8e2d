package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/abhisek/hashboard/internal/notify"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type memRepo struct {
	values map[string]string
	err    error
}

func newMemRepo() *memRepo { return &memRepo{values: map[string]string{}} }

func (r *memRepo) Get(_ context.Context, key string) (string, bool, error) {
	if r.err != nil {
		return "", false, r.err
	}
	v, ok := r.values[key]
	return v, ok, nil
}

func (r *memRepo) Put(_ context.Context, key, value string) error {
	if r.err != nil {
		return r.err
	}
	r.values[key] = value
	return nil
}

func (r *memRepo) Delete(_ context.Context, key string) error {
	if r.err != nil {
		return r.err
	}
	delete(r.values, key)
	return nil
}

type emitted struct {
	kind    notify.Kind
	message string
}

type emitterSpy struct{ calls []emitted }

func (e *emitterSpy) Emit(kind notify.Kind, _, message string) {
	e.calls = append(e.calls, emitted{kind, message})
}

func newTestService() (*Service, *memRepo, *emitterSpy) {
	repo := newMemRepo()
	spy := &emitterSpy{}
	return NewService(repo, spy, nil), repo, spy
}

func TestLoadDefaults(t *testing.T) {
	svc, _, _ := newTestService()

	got, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
	assert.Equal(t, "Digital Twin Project", got.Project.Name)
	assert.Equal(t, PriorityHigh, got.Project.Priority)
	assert.Equal(t, ThemeDark, got.Theme)
	assert.False(t, got.Configured)
}

func TestSaveProjectRoundTrip(t *testing.T) {
	svc, repo, spy := newTestService()
	ctx := context.Background()

	due := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	p := Project{
		Name:        "  Launch  ",
		Description: "ship it",
		DueDate:     &due,
		Budget:      1200.5,
		Priority:    PriorityMedium,
	}
	require.NoError(t, svc.SaveProject(ctx, p))
	assert.Contains(t, repo.values, KeyProject)

	got, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Launch", got.Project.Name)
	assert.Equal(t, PriorityMedium, got.Project.Priority)
	assert.True(t, got.Configured)
	assert.Equal(t, 1200.5, got.Project.Budget)
	require.NotNil(t, got.Project.DueDate)
	assert.True(t, due.Equal(*got.Project.DueDate))

	require.Len(t, spy.calls, 1)
	assert.Equal(t, notify.KindSuccess, spy.calls[0].kind)
	assert.Equal(t, "Project settings saved successfully!", spy.calls[0].message)
}

func TestSaveProjectValidation(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Project)
	}{
		{"empty name", func(p *Project) { p.Name = "   " }},
		{"negative budget", func(p *Project) { p.Budget = -1 }},
		{"unknown priority", func(p *Project) { p.Priority = "urgent" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, spy := newTestService()
			p := Defaults().Project
			tt.edit(&p)

			err := svc.SaveProject(context.Background(), p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSettings))
			assert.Empty(t, repo.values)
			assert.Empty(t, spy.calls)
		})
	}
}

func TestSaveTeam(t *testing.T) {
	svc, repo, spy := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.SaveTeam(ctx, Team{
		UserEmail: "lead@example.com",
		Members:   []string{"a@example.com", " ", "b@example.com", "a@example.com"},
	}))
	assert.Equal(t, "lead@example.com", repo.values[KeyEmail])

	got, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, got.Team.Members)
	assert.Equal(t, "lead@example.com", got.Team.UserEmail)
	assert.Equal(t, Defaults().Project, got.Project, "team save keeps project defaults")

	require.Len(t, spy.calls, 1)
	assert.Equal(t, "Team settings saved successfully!", spy.calls[0].message)
}

func TestSaveTeamRejectsBadEmail(t *testing.T) {
	svc, _, spy := newTestService()
	ctx := context.Background()

	err := svc.SaveTeam(ctx, Team{UserEmail: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidSettings)

	err = svc.SaveTeam(ctx, Team{Members: []string{"nope"}})
	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Empty(t, spy.calls)
}

func TestSaveProjectKeepsMembers(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.SaveTeam(ctx, Team{Members: []string{"a@example.com"}}))
	p := Defaults().Project
	p.Name = "Renamed"
	require.NoError(t, svc.SaveProject(ctx, p))

	got, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Project.Name)
	assert.Equal(t, []string{"a@example.com"}, got.Team.Members)
}

func TestAddRemoveMember(t *testing.T) {
	svc, _, spy := newTestService()
	ctx := context.Background()

	members, err := svc.AddMember(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com"}, members)

	members, err = svc.AddMember(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com"}, members)

	members, err = svc.AddMember(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, members)

	_, err = svc.AddMember(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidSettings)
	_, err = svc.AddMember(ctx, "bogus")
	assert.ErrorIs(t, err, ErrInvalidSettings)

	members, err = svc.RemoveMember(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"b@example.com"}, members)
	assert.Empty(t, spy.calls)
}

func TestSaveTheme(t *testing.T) {
	svc, _, spy := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.SaveTheme(ctx, ThemeLight))
	got, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, got.Theme)

	require.NoError(t, svc.SaveTheme(ctx, ThemeDark))
	require.Len(t, spy.calls, 2)
	assert.Equal(t, "Light theme applied successfully!", spy.calls[0].message)
	assert.Equal(t, "Dark theme applied successfully!", spy.calls[1].message)

	assert.ErrorIs(t, svc.SaveTheme(ctx, "sepia"), ErrInvalidSettings)
}

func TestLoadIgnoresCorruptValues(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.values[KeyProject] = "{not json"
	repo.values[KeyTheme] = "sepia"

	got, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
}

func TestRepoErrorsPropagate(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.err = errors.New("disk gone")

	_, err := svc.Load(context.Background())
	assert.Error(t, err)
	assert.Error(t, svc.SaveTheme(context.Background(), ThemeLight))
}

func TestReset(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.SaveTheme(ctx, ThemeLight))
	require.NoError(t, svc.SaveTeam(ctx, Team{UserEmail: "me@example.com"}))
	require.NoError(t, svc.Reset(ctx))
	assert.Empty(t, repo.values)
}

func TestNormalizeMembers(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeMembers([]string{" a", "b", "", "a "}))
	assert.Empty(t, NormalizeMembers(nil))
	assert.Equal(t, []string{"a"}, RemoveMember([]string{"a", "b", "b"}, "b"))
}

func TestPriorityCycle(t *testing.T) {
	p := PriorityLow
	for range AllPriorities() {
		p = p.Next()
	}
	assert.Equal(t, PriorityLow, p)
	assert.Equal(t, "High Priority", PriorityHigh.Label())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
}
