package model

import "time"

// Teacher is a row of the teachers table. UserID links the teacher to a
// login account and may be absent.
type Teacher struct {
	ID                    int64     `json:"teacher_id"`
	FirstName             string    `json:"first_name"`
	LastName              string    `json:"last_name"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	SubjectSpecialization string    `json:"subject_specialization"`
	HireDate              time.Time `json:"hire_date"`
	UserID                *int64    `json:"user_id"`
}

func (t Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

// TeacherRequest is the payload for creating or replacing a teacher.
type TeacherRequest struct {
	FirstName             string `json:"first_name" binding:"required,notblank,max=50"`
	LastName              string `json:"last_name" binding:"required,notblank,max=50"`
	Email                 string `json:"email" binding:"required,email,max=100"`
	Phone                 string `json:"phone" binding:"required,phone"`
	SubjectSpecialization string `json:"subject_specialization" binding:"required,notblank,max=100"`
	HireDate              string `json:"hire_date" binding:"required,datetime=2006-01-02"`
	UserID                *int64 `json:"user_id" binding:"omitempty,min=1"`
}

func (r TeacherRequest) ToTeacher() (Teacher, error) {
	hired, err := ParseDate(r.HireDate)
	if err != nil {
		return Teacher{}, err
	}
	return Teacher{
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		Email:                 r.Email,
		Phone:                 r.Phone,
		SubjectSpecialization: r.SubjectSpecialization,
		HireDate:              hired,
		UserID:                r.UserID,
	}, nil
}
