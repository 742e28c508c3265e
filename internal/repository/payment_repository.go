package repository

import (
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/model"
)

var paymentMapping = Mapping[model.Payment]{
	Table:    "payments",
	IDColumn: "payment_id",
	Columns: []string{
		"student_id", "course_id", "amount", "payment_date", "payment_method_id", "description", "invoice_number",
	},
	Generated: []string{"payment_id"},
	OrderBy:   []string{"payment_date DESC"},
	Values: func(p *model.Payment) []any {
		return []any{p.StudentID, p.CourseID, p.Amount, p.PaymentDate, p.PaymentMethodID, p.Description, p.InvoiceNumber}
	},
	Fields: func(p *model.Payment) []any {
		return []any{&p.ID, &p.StudentID, &p.CourseID, &p.Amount, &p.PaymentDate, &p.PaymentMethodID, &p.Description, &p.InvoiceNumber}
	},
	GeneratedTargets: func(p *model.Payment) []any { return []any{&p.ID} },
	ID:               func(p *model.Payment) int64 { return p.ID },
}

// PaymentRepository handles payment data access.
type PaymentRepository struct {
	*Repository[model.Payment]
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(db DBTX, log zerolog.Logger) *PaymentRepository {
	return &PaymentRepository{Repository: New(db, paymentMapping, log)}
}
