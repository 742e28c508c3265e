package handler

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stemsi/institute-admin/internal/model"
)

// The constructors below bind each entity's request type to its store.

func NewStudentHandler(store Store[model.Student], log zerolog.Logger) *RecordHandler[model.Student, model.StudentRequest] {
	return NewRecordHandler("student", "students", store,
		model.StudentRequest.ToStudent,
		func(s *model.Student, id int64) { s.ID = id },
		log)
}

func NewTeacherHandler(store Store[model.Teacher], log zerolog.Logger) *RecordHandler[model.Teacher, model.TeacherRequest] {
	return NewRecordHandler("teacher", "teachers", store,
		model.TeacherRequest.ToTeacher,
		func(t *model.Teacher, id int64) { t.ID = id },
		log)
}

func NewCourseHandler(store Store[model.Course], log zerolog.Logger) *RecordHandler[model.Course, model.CourseRequest] {
	return NewRecordHandler("course", "courses", store,
		func(r model.CourseRequest) (model.Course, error) { return r.ToCourse(), nil },
		func(c *model.Course, id int64) { c.ID = id },
		log)
}

func NewExamHandler(store Store[model.Exam], log zerolog.Logger) *RecordHandler[model.Exam, model.ExamRequest] {
	return NewRecordHandler("exam", "exams", store,
		func(r model.ExamRequest) (model.Exam, error) { return r.ToExam(), nil },
		func(e *model.Exam, id int64) { e.ID = id },
		log)
}

func NewPaymentHandler(store Store[model.Payment], log zerolog.Logger) *RecordHandler[model.Payment, model.PaymentRequest] {
	return NewRecordHandler("payment", "payments", store,
		decodePayment,
		func(p *model.Payment, id int64) { p.ID = id },
		log)
}

// maxAmount is the first value NUMERIC(12,2) cannot hold.
var maxAmount = decimal.New(1, 10)

func decodePayment(r model.PaymentRequest) (model.Payment, error) {
	if !r.Amount.IsPositive() {
		return model.Payment{}, FieldErrors{"amount": "amount must be greater than zero"}
	}
	if !r.Amount.Equal(r.Amount.Round(2)) {
		return model.Payment{}, FieldErrors{"amount": "amount must have at most two decimal places"}
	}
	if r.Amount.GreaterThanOrEqual(maxAmount) {
		return model.Payment{}, FieldErrors{"amount": "amount is too large"}
	}
	return r.ToPayment()
}
