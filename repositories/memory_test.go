package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/project-registry/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock returns a clock that advances one minute per call.
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

func strPtr(s string) *string { return &s }

func seedProject(t *testing.T, repo *MemoryProjectRepository, name, status string, div *string) models.Project {
	t.Helper()
	p := models.Project{Name: name, Status: status, Div: div}
	require.NoError(t, repo.Create(context.Background(), &p))
	return p
}

func TestMemoryProjectRepository_CreateAssignsIDAndTimestamps(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryProjectRepository().WithClock(steppingClock(start))

	p := seedProject(t, repo, "Road Repair", models.StatusRegistered, nil)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, start, p.CreatedAt)
	assert.Equal(t, start, p.UpdatedAt)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, p.ID, all[0].ID)
}

func TestMemoryProjectRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProjectRepository()
	p := seedProject(t, repo, "Road Repair", models.StatusRegistered, nil)

	t.Run("updates an existing project", func(t *testing.T) {
		updated, err := repo.UpdateStatus(ctx, p.ID, "closed-ish typo")
		require.NoError(t, err)
		assert.Equal(t, "closed-ish typo", updated.Status)
		assert.Equal(t, p.ID, updated.ID)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := repo.UpdateStatus(ctx, "missing", models.StatusClosed)
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})
}

func TestMemoryProjectRepository_FindRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProjectRepository().WithClock(steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	for _, name := range []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"} {
		seedProject(t, repo, name, models.StatusRegistered, nil)
	}

	recent, err := repo.FindRecent(ctx, models.RecentProjectsLimit)
	require.NoError(t, err)
	require.Len(t, recent, 5)

	names := make([]string, 0, len(recent))
	for _, p := range recent {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"p7", "p6", "p5", "p4", "p3"}, names)
}

func TestMemoryProjectRepository_CountsAndDepartmentStats(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProjectRepository()
	seedProject(t, repo, "a", models.StatusClosed, strPtr("IT"))
	seedProject(t, repo, "b", models.StatusRunning, strPtr("IT"))
	seedProject(t, repo, "c", models.StatusClosed, nil)
	seedProject(t, repo, "d", "closed", strPtr("HR"))

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	closed, err := repo.CountByStatus(ctx, models.StatusClosed)
	require.NoError(t, err)
	assert.Equal(t, int64(2), closed, "status match is case-sensitive")

	stats, err := repo.DepartmentStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 3)

	assert.Equal(t, "IT", *stats[0].Div)
	assert.Equal(t, int64(2), stats[0].TotalProjects)
	assert.Equal(t, int64(1), stats[0].ClosedProjects)

	assert.Nil(t, stats[1].Div)
	assert.Equal(t, int64(1), stats[1].TotalProjects)
	assert.Equal(t, int64(1), stats[1].ClosedProjects)

	assert.Equal(t, "HR", *stats[2].Div)
	assert.Equal(t, int64(0), stats[2].ClosedProjects)
}

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	_, err := repo.FindByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	user := models.User{Email: "a@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, &user))
	assert.NotEmpty(t, user.ID)

	found, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	err = repo.Create(ctx, &models.User{Email: "a@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}
