package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/project-registry/models"
)

// MemoryProjectRepository keeps projects in process memory. It backs the
// "memory" driver for local runs and tests; insertion order is its natural order.
type MemoryProjectRepository struct {
	mu       sync.RWMutex
	projects []models.Project
	now      func() time.Time
}

// NewMemoryProjectRepository creates an empty in-memory project store
func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the timestamp source; used by tests that need
// deterministic creation times.
func (r *MemoryProjectRepository) WithClock(now func() time.Time) *MemoryProjectRepository {
	r.now = now
	return r
}

func (r *MemoryProjectRepository) Create(_ context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	project.ID = uuid.NewString()
	project.CreatedAt = now
	project.UpdatedAt = now
	r.projects = append(r.projects, cloneProject(*project))
	return nil
}

func (r *MemoryProjectRepository) FindAll(_ context.Context) ([]models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, cloneProject(p))
	}
	return out, nil
}

func (r *MemoryProjectRepository) UpdateStatus(_ context.Context, id, status string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.projects {
		if r.projects[i].ID != id {
			continue
		}
		r.projects[i].Status = status
		r.projects[i].UpdatedAt = r.now()
		updated := cloneProject(r.projects[i])
		return &updated, nil
	}
	return nil, ErrProjectNotFound
}

func (r *MemoryProjectRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.projects)), nil
}

func (r *MemoryProjectRepository) CountByStatus(_ context.Context, status string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, p := range r.projects {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *MemoryProjectRepository) FindRecent(ctx context.Context, limit int) ([]models.Project, error) {
	out, _ := r.FindAll(ctx)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryProjectRepository) DepartmentStats(_ context.Context) ([]models.DepartmentStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// groups keep first-seen order; "" keys the projects without a division
	index := make(map[string]int)
	stats := make([]models.DepartmentStat, 0)
	for _, p := range r.projects {
		key := ""
		if p.Div != nil {
			key = "div:" + *p.Div
		}
		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, models.DepartmentStat{Div: cloneString(p.Div)})
		}
		stats[i].TotalProjects++
		if p.Status == models.StatusClosed {
			stats[i].ClosedProjects++
		}
	}
	return stats, nil
}

// MemoryUserRepository keeps user accounts in process memory
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewMemoryUserRepository creates an empty in-memory user store
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return ErrDuplicateEmail
	}
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.Email] = *user
	return nil
}

func cloneProject(p models.Project) models.Project {
	p.Div = cloneString(p.Div)
	return p
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
