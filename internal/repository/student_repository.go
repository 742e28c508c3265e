package repository

import (
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/model"
)

var studentMapping = Mapping[model.Student]{
	Table:    "students",
	IDColumn: "student_id",
	Columns: []string{
		"first_name", "last_name", "date_of_birth", "email", "phone", "address", "enrollment_date",
	},
	Generated: []string{"student_id"},
	OrderBy:   []string{"last_name", "first_name"},
	Values: func(s *model.Student) []any {
		return []any{s.FirstName, s.LastName, s.DateOfBirth, s.Email, s.Phone, s.Address, s.EnrollmentDate}
	},
	Fields: func(s *model.Student) []any {
		return []any{&s.ID, &s.FirstName, &s.LastName, &s.DateOfBirth, &s.Email, &s.Phone, &s.Address, &s.EnrollmentDate}
	},
	GeneratedTargets: func(s *model.Student) []any { return []any{&s.ID} },
	ID:               func(s *model.Student) int64 { return s.ID },
}

// StudentRepository handles student data access. Deleting a student removes
// their payments through the schema's cascade rule.
type StudentRepository struct {
	*Repository[model.Student]
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db DBTX, log zerolog.Logger) *StudentRepository {
	return &StudentRepository{Repository: New(db, studentMapping, log)}
}
