package student

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID        string    `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Grade     string    `json:"grade"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateStudentRequest struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Grade     string `json:"grade" binding:"required"`
	Contact   string `json:"contact" binding:"required"`
}

type UpdateStudentRequest struct {
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Grade     *string `json:"grade"`
	Contact   *string `json:"contact"`
}

func NewFromCreateRequest(req CreateStudentRequest) Student {
	now := time.Now().UTC()

	return Student{
		ID:        uuid.NewString(),
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Grade:     req.Grade,
		Contact:   req.Contact,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
