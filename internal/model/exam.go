package model

import "time"

// Exam is a row of the exams table. ExamDate keeps second precision.
type Exam struct {
	ID       int64     `json:"exam_id"`
	ExamName string    `json:"exam_name"`
	ExamDate time.Time `json:"exam_date"`
	CourseID *int64    `json:"course_id"`
	MaxMarks int       `json:"max_marks"`
}

// ExamRequest is the payload for creating or replacing an exam.
type ExamRequest struct {
	ExamName string    `json:"exam_name" binding:"required,notblank,max=100"`
	ExamDate time.Time `json:"exam_date" binding:"required"`
	CourseID *int64    `json:"course_id" binding:"omitempty,min=1"`
	MaxMarks int       `json:"max_marks" binding:"required,min=1,max=1000"`
}

func (r ExamRequest) ToExam() Exam {
	return Exam{
		ExamName: r.ExamName,
		ExamDate: r.ExamDate.Truncate(time.Second),
		CourseID: r.CourseID,
		MaxMarks: r.MaxMarks,
	}
}
