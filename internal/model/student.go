package model

import "time"

// Student is a row of the students table.
type Student struct {
	ID             int64     `json:"student_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	EnrollmentDate time.Time `json:"enrollment_date"`
}

// FullName returns "first last".
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// StudentRequest is the payload for creating or replacing a student.
type StudentRequest struct {
	FirstName      string `json:"first_name" binding:"required,notblank,max=50"`
	LastName       string `json:"last_name" binding:"required,notblank,max=50"`
	DateOfBirth    string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Email          string `json:"email" binding:"required,email,max=100"`
	Phone          string `json:"phone" binding:"required,phone"`
	Address        string `json:"address" binding:"required,notblank,max=255"`
	EnrollmentDate string `json:"enrollment_date" binding:"required,datetime=2006-01-02"`
}

// ToStudent converts the request into a record. The layout has already been
// checked by the binding tags.
func (r StudentRequest) ToStudent() (Student, error) {
	dob, err := ParseDate(r.DateOfBirth)
	if err != nil {
		return Student{}, err
	}
	enrolled, err := ParseDate(r.EnrollmentDate)
	if err != nil {
		return Student{}, err
	}
	return Student{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		DateOfBirth:    dob,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
		EnrollmentDate: enrolled,
	}, nil
}
