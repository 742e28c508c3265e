package repository

import (
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/model"
)

var courseMapping = Mapping[model.Course]{
	Table:     "courses",
	IDColumn:  "course_id",
	Columns:   []string{"course_name", "course_code", "description", "credits", "teacher_id"},
	Generated: []string{"course_id"},
	OrderBy:   []string{"course_name"},
	Values: func(c *model.Course) []any {
		return []any{c.CourseName, c.CourseCode, c.Description, c.Credits, c.TeacherID}
	},
	Fields: func(c *model.Course) []any {
		return []any{&c.ID, &c.CourseName, &c.CourseCode, &c.Description, &c.Credits, &c.TeacherID}
	},
	GeneratedTargets: func(c *model.Course) []any { return []any{&c.ID} },
	ID:               func(c *model.Course) int64 { return c.ID },
}

// CourseRepository handles course data access.
type CourseRepository struct {
	*Repository[model.Course]
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(db DBTX, log zerolog.Logger) *CourseRepository {
	return &CourseRepository{Repository: New(db, courseMapping, log)}
}
