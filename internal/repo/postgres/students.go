package postgres

import (
	"context"
	"errors"

	"github.com/danmwangi/schoolhub/internal/domain/student"
	"github.com/danmwangi/schoolhub/internal/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrStudentNotFound = errors.New("student not found")

type StudentsRepo struct {
	pool *pgxpool.Pool
}

// constructor function

func NewStudentsRepo(pool *pgxpool.Pool) *StudentsRepo {
	return &StudentsRepo{
		pool: pool,
	}
}

// ListPage returns one 1-indexed page of students plus the total page
// count computed from the full row count at query time. No filters are
// accepted here: filtering is a client-side concern over the loaded page.
func (r *StudentsRepo) ListPage(ctx context.Context, page, limit int) ([]student.Student, int, error) {
	offset := (page - 1) * limit

	rows, err := r.pool.Query(ctx,
		`SELECT id,
		firstname,
		lastname,
		grade,
		contact,
		created_at,
		updated_at,
		COUNT(*) OVER() AS total
	FROM students
	ORDER BY lastname ASC, firstname ASC, id ASC
	LIMIT $1 OFFSET $2`,
		limit, offset)

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	output := make([]student.Student, 0, limit)
	total := 0

	for rows.Next() {
		var s student.Student
		var t int

		err = rows.Scan(&s.ID, &s.Firstname, &s.Lastname, &s.Grade, &s.Contact, &s.CreatedAt, &s.UpdatedAt, &t)

		if err != nil {
			return nil, 0, err
		}

		total = t
		output = append(output, s)
	}

	err = rows.Err()

	if err != nil {
		return nil, 0, err
	}

	// COUNT(*) OVER() vanishes with the rows on a past-the-end page
	if len(output) == 0 {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&total)

		if err != nil {
			return nil, 0, err
		}
	}

	return output, utils.TotalPages(total, limit), nil
}

func (r *StudentsRepo) Create(ctx context.Context, req student.CreateStudentRequest) (student.Student, error) {
	s := student.NewFromCreateRequest(req)

	_, err := r.pool.Exec(ctx,
		`INSERT INTO students (id, firstname, lastname, grade, contact, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		s.ID, s.Firstname, s.Lastname, s.Grade, s.Contact, s.CreatedAt, s.UpdatedAt)

	if err != nil {
		return student.Student{}, err
	}

	return s, nil
}

func (r *StudentsRepo) GetByID(ctx context.Context, id string) (student.Student, error) {
	var s student.Student

	err := r.pool.QueryRow(ctx,
		`SELECT id, firstname, lastname, grade, contact, created_at, updated_at
		 FROM students
		 WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Firstname, &s.Lastname, &s.Grade, &s.Contact, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return student.Student{}, ErrStudentNotFound
		}

		return student.Student{}, err
	}

	return s, nil
}

func (r *StudentsRepo) Update(ctx context.Context, id string, req student.UpdateStudentRequest) (student.Student, error) {
	current, err := r.GetByID(ctx, id)

	if err != nil {
		return student.Student{}, err
	}

	if req.Firstname != nil {
		current.Firstname = *req.Firstname
	}
	if req.Lastname != nil {
		current.Lastname = *req.Lastname
	}
	if req.Grade != nil {
		current.Grade = *req.Grade
	}
	if req.Contact != nil {
		current.Contact = *req.Contact
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE students
		 SET firstname = $2, lastname = $3, grade = $4, contact = $5, updated_at = now()
		 WHERE id = $1`,
		id, current.Firstname, current.Lastname, current.Grade, current.Contact)

	if err != nil {
		return student.Student{}, err
	}

	if tag.RowsAffected() == 0 {
		return student.Student{}, ErrStudentNotFound
	}

	return current, nil
}

func (r *StudentsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}
