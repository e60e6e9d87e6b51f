package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/danmwangi/schoolhub/internal/domain/student"
	"github.com/danmwangi/schoolhub/internal/utils"
)

var ErrNotFound = errors.New("not found")

// StudentsRepo keeps students in memory. Used by tests and by the dev
// server when no database is reachable.
type StudentsRepo struct {
	mu    sync.RWMutex
	items map[string]student.Student
}

func NewStudentsRepo() *StudentsRepo {
	return &StudentsRepo{
		items: make(map[string]student.Student),
	}
}

func (r *StudentsRepo) ListPage(ctx context.Context, page, limit int) ([]student.Student, int, error) {
	r.mu.RLock()
	all := make([]student.Student, 0, len(r.items))

	for _, s := range r.items {
		all = append(all, s)
	}
	r.mu.RUnlock()

	// same ordering as the postgres repo
	sort.Slice(all, func(i, j int) bool {
		if all[i].Lastname != all[j].Lastname {
			return all[i].Lastname < all[j].Lastname
		}
		if all[i].Firstname != all[j].Firstname {
			return all[i].Firstname < all[j].Firstname
		}
		return all[i].ID < all[j].ID
	})

	totalPages := utils.TotalPages(len(all), limit)

	start := (page - 1) * limit

	if start >= len(all) {
		return []student.Student{}, totalPages, nil
	}

	end := start + limit

	if end > len(all) {
		end = len(all)
	}

	return all[start:end], totalPages, nil
}

func (r *StudentsRepo) Create(ctx context.Context, req student.CreateStudentRequest) (student.Student, error) {
	s := student.NewFromCreateRequest(req)

	r.mu.Lock()
	r.items[s.ID] = s
	r.mu.Unlock()

	return s, nil
}

func (r *StudentsRepo) GetByID(ctx context.Context, id string) (student.Student, error) {
	r.mu.RLock()
	s, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return student.Student{}, ErrNotFound
	}

	return s, nil
}

func (r *StudentsRepo) Update(ctx context.Context, id string, req student.UpdateStudentRequest) (student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]

	if !ok {
		return student.Student{}, ErrNotFound
	}

	if req.Firstname != nil {
		s.Firstname = *req.Firstname
	}
	if req.Lastname != nil {
		s.Lastname = *req.Lastname
	}
	if req.Grade != nil {
		s.Grade = *req.Grade
	}
	if req.Contact != nil {
		s.Contact = *req.Contact
	}

	s.UpdatedAt = time.Now().UTC()
	r.items[id] = s

	return s, nil
}

func (r *StudentsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]

	if !ok {
		return ErrNotFound
	}

	delete(r.items, id)

	return nil
}
