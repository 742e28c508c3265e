package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a row of the payments table. Amount is an exact decimal.
type Payment struct {
	ID              int64           `json:"payment_id"`
	StudentID       int64           `json:"student_id"`
	CourseID        *int64          `json:"course_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     time.Time       `json:"payment_date"`
	PaymentMethodID *int64          `json:"payment_method_id"`
	Description     *string         `json:"description"`
	InvoiceNumber   *string         `json:"invoice_number"`
}

// PaymentRequest is the payload for creating or replacing a payment.
// Amount accepts a JSON number or string; positivity is checked by the handler.
type PaymentRequest struct {
	StudentID       int64           `json:"student_id" binding:"required,min=1"`
	CourseID        *int64          `json:"course_id" binding:"omitempty,min=1"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     string          `json:"payment_date" binding:"required,datetime=2006-01-02"`
	PaymentMethodID *int64          `json:"payment_method_id" binding:"omitempty,min=1"`
	Description     *string         `json:"description" binding:"omitempty,max=255"`
	InvoiceNumber   *string         `json:"invoice_number" binding:"omitempty,max=50"`
}

func (r PaymentRequest) ToPayment() (Payment, error) {
	paid, err := ParseDate(r.PaymentDate)
	if err != nil {
		return Payment{}, err
	}
	return Payment{
		StudentID:       r.StudentID,
		CourseID:        r.CourseID,
		Amount:          r.Amount,
		PaymentDate:     paid,
		PaymentMethodID: r.PaymentMethodID,
		Description:     r.Description,
		InvoiceNumber:   r.InvoiceNumber,
	}, nil
}
