package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/logger"
	"github.com/stemsi/institute-admin/internal/model"
	"github.com/stemsi/institute-admin/internal/repository"
)

const (
	revenueMonths      = 12
	upcomingExamsLimit = 5
)

// DashboardService assembles the chart data shown on the dashboard tab.
type DashboardService struct {
	repo *repository.DashboardRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewDashboardService(repo *repository.DashboardRepository, log zerolog.Logger) *DashboardService {
	return &DashboardService{repo: repo, log: logger.Component(log, "dashboard_service"), now: time.Now}
}

// Get runs each aggregate query in turn and returns the combined payload.
func (s *DashboardService) Get(ctx context.Context) (model.Dashboard, error) {
	var (
		d   model.Dashboard
		err error
	)
	now := s.now().UTC()

	if d.Summary, err = s.repo.GetSummary(ctx); err != nil {
		return d, err
	}
	if d.RevenueByMonth, err = s.repo.GetRevenueByMonth(ctx, RevenueWindowStart(now, revenueMonths)); err != nil {
		return d, err
	}
	if d.CoursesByTeacher, err = s.repo.GetCoursesByTeacher(ctx); err != nil {
		return d, err
	}
	if d.ExamsByCourse, err = s.repo.GetExamsByCourse(ctx); err != nil {
		return d, err
	}
	if d.PaymentsByMethod, err = s.repo.GetPaymentsByMethod(ctx); err != nil {
		return d, err
	}
	if d.UpcomingExams, err = s.repo.GetUpcomingExams(ctx, now, upcomingExamsLimit); err != nil {
		return d, err
	}
	return d, nil
}

// RevenueWindowStart returns the first day of the month months-1 months
// before now, so the window covers exactly months calendar months.
func RevenueWindowStart(now time.Time, months int) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -(months - 1), 0)
}
