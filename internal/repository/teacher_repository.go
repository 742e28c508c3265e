package repository

import (
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/model"
)

var teacherMapping = Mapping[model.Teacher]{
	Table:    "teachers",
	IDColumn: "teacher_id",
	Columns: []string{
		"first_name", "last_name", "email", "phone", "subject_specialization", "hire_date", "user_id",
	},
	Generated: []string{"teacher_id"},
	OrderBy:   []string{"last_name", "first_name"},
	Values: func(t *model.Teacher) []any {
		return []any{t.FirstName, t.LastName, t.Email, t.Phone, t.SubjectSpecialization, t.HireDate, t.UserID}
	},
	Fields: func(t *model.Teacher) []any {
		return []any{&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.SubjectSpecialization, &t.HireDate, &t.UserID}
	},
	GeneratedTargets: func(t *model.Teacher) []any { return []any{&t.ID} },
	ID:               func(t *model.Teacher) int64 { return t.ID },
}

// TeacherRepository handles teacher data access.
type TeacherRepository struct {
	*Repository[model.Teacher]
}

// NewTeacherRepository creates a new TeacherRepository.
func NewTeacherRepository(db DBTX, log zerolog.Logger) *TeacherRepository {
	return &TeacherRepository{Repository: New(db, teacherMapping, log)}
}
