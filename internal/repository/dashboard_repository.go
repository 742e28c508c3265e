package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stemsi/institute-admin/internal/apperror"
	"github.com/stemsi/institute-admin/internal/model"
)

// DashboardRepository computes the aggregates behind the dashboard charts.
type DashboardRepository struct {
	db DBTX
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(db DBTX) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// GetSummary retrieves the entity totals and the all-time revenue.
func (r *DashboardRepository) GetSummary(ctx context.Context) (model.DashboardSummary, error) {
	var s model.DashboardSummary
	err := r.db.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM teachers),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM exams),
			(SELECT COUNT(*) FROM payments),
			(SELECT COALESCE(SUM(amount), 0) FROM payments)`,
	).Scan(&s.Students, &s.Teachers, &s.Courses, &s.Exams, &s.Payments, &s.TotalRevenue)
	if err != nil {
		return s, apperror.Persistence("dashboard.GetSummary", classify(err))
	}
	return s, nil
}

// GetRevenueByMonth retrieves payment totals for the months starting at or
// after since, oldest first.
func (r *DashboardRepository) GetRevenueByMonth(ctx context.Context, since time.Time) ([]model.MonthlyRevenue, error) {
	const op = "dashboard.GetRevenueByMonth"

	rows, err := r.db.Query(ctx,
		`SELECT to_char(date_trunc('month', payment_date), 'YYYY-MM') AS month,
		        SUM(amount), COUNT(*)
		 FROM payments
		 WHERE payment_date >= $1
		 GROUP BY month
		 ORDER BY month ASC`, since,
	)
	if err != nil {
		return nil, apperror.Persistence(op, classify(err))
	}
	defer rows.Close()

	out := []model.MonthlyRevenue{}
	for rows.Next() {
		var m model.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.Total, &m.Payments); err != nil {
			return nil, apperror.Persistence(op, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Persistence(op, err)
	}
	return out, nil
}

// GetCoursesByTeacher counts courses per teacher, including teachers with none.
func (r *DashboardRepository) GetCoursesByTeacher(ctx context.Context) ([]model.CategoryCount, error) {
	return r.categories(ctx, "dashboard.GetCoursesByTeacher",
		`SELECT t.first_name || ' ' || t.last_name, COUNT(c.course_id)
		 FROM teachers t
		 LEFT JOIN courses c ON c.teacher_id = t.teacher_id
		 GROUP BY t.teacher_id, t.first_name, t.last_name
		 ORDER BY COUNT(c.course_id) DESC, t.last_name, t.first_name`)
}

// GetExamsByCourse counts exams per course, including courses with none.
func (r *DashboardRepository) GetExamsByCourse(ctx context.Context) ([]model.CategoryCount, error) {
	return r.categories(ctx, "dashboard.GetExamsByCourse",
		`SELECT c.course_name, COUNT(e.exam_id)
		 FROM courses c
		 LEFT JOIN exams e ON e.course_id = c.course_id
		 GROUP BY c.course_id, c.course_name
		 ORDER BY COUNT(e.exam_id) DESC, c.course_name`)
}

// GetPaymentsByMethod counts payments per payment method.
func (r *DashboardRepository) GetPaymentsByMethod(ctx context.Context) ([]model.CategoryCount, error) {
	return r.categories(ctx, "dashboard.GetPaymentsByMethod",
		`SELECT COALESCE(m.method_name, 'Unspecified'), COUNT(*)
		 FROM payments p
		 LEFT JOIN payment_methods m ON m.payment_method_id = p.payment_method_id
		 GROUP BY 1
		 ORDER BY 2 DESC, 1`)
}

// GetUpcomingExams retrieves the next exams scheduled after now.
func (r *DashboardRepository) GetUpcomingExams(ctx context.Context, now time.Time, limit int) ([]model.UpcomingExam, error) {
	const op = "dashboard.GetUpcomingExams"

	rows, err := r.db.Query(ctx,
		`SELECT e.exam_id, e.exam_name, e.exam_date, c.course_name
		 FROM exams e
		 LEFT JOIN courses c ON c.course_id = e.course_id
		 WHERE e.exam_date > $1
		 ORDER BY e.exam_date ASC, e.exam_id ASC
		 LIMIT $2`, now, limit,
	)
	if err != nil {
		return nil, apperror.Persistence(op, classify(err))
	}

	exams, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.UpcomingExam, error) {
		var e model.UpcomingExam
		err := row.Scan(&e.ID, &e.ExamName, &e.ExamDate, &e.CourseName)
		return e, err
	})
	if err != nil {
		return nil, apperror.Persistence(op, err)
	}
	if exams == nil {
		exams = []model.UpcomingExam{}
	}
	return exams, nil
}

func (r *DashboardRepository) categories(ctx context.Context, op, query string) ([]model.CategoryCount, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.Persistence(op, classify(err))
	}
	defer rows.Close()

	out := []model.CategoryCount{}
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, apperror.Persistence(op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Persistence(op, err)
	}
	return out, nil
}
