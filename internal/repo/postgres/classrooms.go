package postgres

import (
	"context"

	"github.com/danmwangi/schoolhub/internal/domain/classroom"
	"github.com/danmwangi/schoolhub/internal/utils"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClassroomsRepo struct {
	pool *pgxpool.Pool
}

func NewClassroomsRepo(pool *pgxpool.Pool) *ClassroomsRepo {
	return &ClassroomsRepo{pool: pool}
}

// ListPage has the same page contract as StudentsRepo.ListPage.
func (r *ClassroomsRepo) ListPage(ctx context.Context, page, limit int) ([]classroom.Classroom, int, error) {
	offset := (page - 1) * limit

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, capacity, created_at, updated_at, COUNT(*) OVER() AS total
		 FROM classroom
		 ORDER BY name ASC, id ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset)

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	output := make([]classroom.Classroom, 0, limit)
	total := 0

	for rows.Next() {
		var c classroom.Classroom
		var t int

		err = rows.Scan(&c.ID, &c.Name, &c.Capacity, &c.CreatedAt, &c.UpdatedAt, &t)

		if err != nil {
			return nil, 0, err
		}

		total = t
		output = append(output, c)
	}

	err = rows.Err()

	if err != nil {
		return nil, 0, err
	}

	if len(output) == 0 {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM classroom`).Scan(&total)

		if err != nil {
			return nil, 0, err
		}
	}

	return output, utils.TotalPages(total, limit), nil
}
