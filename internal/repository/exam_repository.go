package repository

import (
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/model"
)

var examMapping = Mapping[model.Exam]{
	Table:     "exams",
	IDColumn:  "exam_id",
	Columns:   []string{"exam_name", "exam_date", "course_id", "max_marks"},
	Generated: []string{"exam_id"},
	OrderBy:   []string{"exam_date DESC"},
	Values: func(e *model.Exam) []any {
		return []any{e.ExamName, e.ExamDate, e.CourseID, e.MaxMarks}
	},
	Fields: func(e *model.Exam) []any {
		return []any{&e.ID, &e.ExamName, &e.ExamDate, &e.CourseID, &e.MaxMarks}
	},
	GeneratedTargets: func(e *model.Exam) []any { return []any{&e.ID} },
	ID:               func(e *model.Exam) int64 { return e.ID },
}

// ExamRepository handles exam data access.
type ExamRepository struct {
	*Repository[model.Exam]
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(db DBTX, log zerolog.Logger) *ExamRepository {
	return &ExamRepository{Repository: New(db, examMapping, log)}
}
