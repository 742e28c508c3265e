package model

// Course is a row of the courses table.
type Course struct {
	ID          int64   `json:"course_id"`
	CourseName  string  `json:"course_name"`
	CourseCode  string  `json:"course_code"`
	Description *string `json:"description"`
	Credits     *int    `json:"credits"`
	TeacherID   *int64  `json:"teacher_id"`
}

// CourseRequest is the payload for creating or replacing a course.
type CourseRequest struct {
	CourseName  string  `json:"course_name" binding:"required,notblank,max=100"`
	CourseCode  string  `json:"course_code" binding:"required,notblank,max=20"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Credits     *int    `json:"credits" binding:"omitempty,min=0,max=60"`
	TeacherID   *int64  `json:"teacher_id" binding:"omitempty,min=1"`
}

func (r CourseRequest) ToCourse() Course {
	return Course{
		CourseName:  r.CourseName,
		CourseCode:  r.CourseCode,
		Description: r.Description,
		Credits:     r.Credits,
		TeacherID:   r.TeacherID,
	}
}
