package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary holds the headline totals shown on the dashboard.
type DashboardSummary struct {
	Students     int64           `json:"students"`
	Teachers     int64           `json:"teachers"`
	Courses      int64           `json:"courses"`
	Exams        int64           `json:"exams"`
	Payments     int64           `json:"payments"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// CategoryCount is one slice of a pie or bar chart.
type CategoryCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// MonthlyRevenue is the payment total of one calendar month (yyyy-mm).
type MonthlyRevenue struct {
	Month    string          `json:"month"`
	Total    decimal.Decimal `json:"total"`
	Payments int64           `json:"payments"`
}

// UpcomingExam is the minimal exam data listed on the dashboard.
type UpcomingExam struct {
	ID         int64     `json:"exam_id"`
	ExamName   string    `json:"exam_name"`
	ExamDate   time.Time `json:"exam_date"`
	CourseName *string   `json:"course_name"`
}

// Dashboard is the aggregate payload handed to the chart collaborator.
type Dashboard struct {
	Summary          DashboardSummary `json:"summary"`
	RevenueByMonth   []MonthlyRevenue `json:"revenue_by_month"`
	CoursesByTeacher []CategoryCount  `json:"courses_by_teacher"`
	ExamsByCourse    []CategoryCount  `json:"exams_by_course"`
	PaymentsByMethod []CategoryCount  `json:"payments_by_method"`
	UpcomingExams    []UpcomingExam   `json:"upcoming_exams"`
}
