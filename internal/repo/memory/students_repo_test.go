package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/danmwangi/schoolhub/internal/domain/student"
)

func seed(t *testing.T, r *StudentsRepo, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		_, err := r.Create(context.Background(), student.CreateStudentRequest{
			Firstname: fmt.Sprintf("First%02d", i),
			Lastname:  fmt.Sprintf("Last%02d", i),
			Grade:     "4",
			Contact:   "0700000000",
		})

		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestListPage(t *testing.T) {
	r := NewStudentsRepo()
	seed(t, r, 23)

	tests := []struct {
		name      string
		page      int
		limit     int
		wantLen   int
		wantPages int
	}{
		{"page 1", 1, 10, 10, 3},
		{"page 3 remainder", 3, 10, 3, 3},
		{"past the end", 9, 10, 0, 3},
		{"all on one page", 1, 100, 23, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, pages, err := r.ListPage(context.Background(), tt.page, tt.limit)

			if err != nil {
				t.Fatalf("ListPage: %v", err)
			}

			if len(rows) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(rows), tt.wantLen)
			}

			if pages != tt.wantPages {
				t.Fatalf("totalPages = %d, want %d", pages, tt.wantPages)
			}
		})
	}
}

func TestListPage_Empty(t *testing.T) {
	r := NewStudentsRepo()

	rows, pages, err := r.ListPage(context.Background(), 1, 10)

	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}

	if len(rows) != 0 || pages != 0 {
		t.Fatalf("got %d rows, %d pages, want 0 and 0", len(rows), pages)
	}
}

func TestCRUDRoundTrip(t *testing.T) {
	r := NewStudentsRepo()

	created, err := r.Create(context.Background(), student.CreateStudentRequest{
		Firstname: "Anna", Lastname: "Otieno", Grade: "4", Contact: "0712345678",
	})

	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := r.GetByID(context.Background(), created.ID)

	if err != nil || got.Firstname != "Anna" {
		t.Fatalf("GetByID: %v %+v", err, got)
	}

	grade := "5"
	updated, err := r.Update(context.Background(), created.ID, student.UpdateStudentRequest{Grade: &grade})

	if err != nil || updated.Grade != "5" || updated.Firstname != "Anna" {
		t.Fatalf("Update: %v %+v", err, updated)
	}

	if err := r.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := r.GetByID(context.Background(), created.ID); err != ErrNotFound {
		t.Fatalf("GetByID after delete: %v, want ErrNotFound", err)
	}

	if err := r.Delete(context.Background(), created.ID); err != ErrNotFound {
		t.Fatalf("second Delete: %v, want ErrNotFound", err)
	}
}
