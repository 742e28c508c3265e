package repository

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stemsi/institute-admin/internal/apperror"
	"github.com/stemsi/institute-admin/internal/logger"
	"github.com/stemsi/institute-admin/internal/model"
)

var testLog = logger.New(io.Discard, "json")

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func checkMapping[E any](t *testing.T, m Mapping[E]) {
	t.Helper()
	var e E
	if got := len(m.Values(&e)); got != len(m.Columns) {
		t.Errorf("%s: %d values for %d columns", m.Table, got, len(m.Columns))
	}
	if got, want := len(m.Fields(&e)), len(m.selectColumns()); got != want {
		t.Errorf("%s: %d scan fields for %d selected columns", m.Table, got, want)
	}
	if got := len(m.GeneratedTargets(&e)); got != len(m.Generated) {
		t.Errorf("%s: %d generated targets for %d generated columns", m.Table, got, len(m.Generated))
	}
	if len(m.Generated) == 0 || m.Generated[0] != m.IDColumn {
		t.Errorf("%s: first generated column must be %s", m.Table, m.IDColumn)
	}
}

func TestMappingsAreConsistent(t *testing.T) {
	checkMapping(t, studentMapping)
	checkMapping(t, teacherMapping)
	checkMapping(t, courseMapping)
	checkMapping(t, examMapping)
	checkMapping(t, paymentMapping)
	checkMapping(t, userMapping)
}

func TestCreateAssignsGeneratedIdentity(t *testing.T) {
	db := &fakeDB{row: fakeRow{values: []any{int64(42)}}}
	repo := NewStudentRepository(db, testLog)

	s := model.Student{
		ID:             99,
		FirstName:      "Ada",
		LastName:       "Lovelace",
		DateOfBirth:    date(2001, time.December, 10),
		Email:          "ada@example.com",
		Phone:          "+44 20 7946 0000",
		Address:        "12 St James's Square",
		EnrollmentDate: date(2024, time.September, 1),
	}
	if err := repo.Create(context.Background(), &s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if s.ID != 42 {
		t.Fatalf("ID = %d, want 42", s.ID)
	}
	for _, frag := range []string{"INSERT INTO students", "first_name", "enrollment_date", "$7", "RETURNING student_id"} {
		if !strings.Contains(db.lastSQL, frag) {
			t.Errorf("SQL %q missing %q", db.lastSQL, frag)
		}
	}
	if strings.Contains(db.lastSQL, "$8") {
		t.Errorf("SQL %q binds the identity", db.lastSQL)
	}
	if len(db.lastArgs) != 7 || db.lastArgs[0] != "Ada" || db.lastArgs[4] != "+44 20 7946 0000" {
		t.Fatalf("args = %v", db.lastArgs)
	}
	if strings.Contains(db.lastSQL, "Ada") {
		t.Fatal("values must be bound, not inlined")
	}
}

func TestCreateReturnsDatabaseGeneratedColumns(t *testing.T) {
	created := time.Date(2025, time.March, 3, 8, 30, 15, 0, time.UTC)
	db := &fakeDB{row: fakeRow{values: []any{int64(5), created}}}
	repo := NewUserRepository(db, testLog)

	u := model.User{Username: "alice", PasswordHash: "$2a$10$hash", RoleID: model.RoleAdmin}
	if err := repo.Create(context.Background(), &u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID != 5 || !u.CreatedAt.Equal(created) {
		t.Fatalf("user = %+v", u)
	}
	if !strings.Contains(db.lastSQL, "RETURNING user_id, created_at") {
		t.Fatalf("SQL = %q", db.lastSQL)
	}
	if db.lastArgs[2] != (*string)(nil) {
		t.Fatalf("absent email must bind as a nil pointer, got %#v", db.lastArgs[2])
	}
}

func TestCreateFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		detail error
	}{
		{name: "no generated key", err: pgx.ErrNoRows, detail: apperror.ErrNoIdentity},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505", ConstraintName: "courses_course_code_key"}, detail: apperror.ErrDuplicate},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503", ConstraintName: "courses_teacher_id_fkey"}, detail: apperror.ErrForeignKey},
		{name: "transport", err: errors.New("connection reset by peer")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDB{row: fakeRow{err: tt.err}}
			repo := NewCourseRepository(db, testLog)

			c := model.Course{CourseName: "Algebra", CourseCode: "MATH101"}
			err := repo.Create(context.Background(), &c)
			if !errors.Is(err, apperror.ErrPersistence) {
				t.Fatalf("err = %v, want persistence error", err)
			}
			if tt.detail != nil && !errors.Is(err, tt.detail) {
				t.Fatalf("err = %v, want %v", err, tt.detail)
			}
			if c.ID != 0 {
				t.Fatalf("ID = %d after failed create", c.ID)
			}
		})
	}
}

func TestGetByIDMapsOptionalColumns(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{values: []any{int64(7), "Algebra", "MATH101", nil, nil, nil}}}
		repo := NewCourseRepository(db, testLog)

		c, found, err := repo.GetByID(context.Background(), 7)
		if err != nil || !found {
			t.Fatalf("found=%v err=%v", found, err)
		}
		if c.Description != nil || c.Credits != nil || c.TeacherID != nil {
			t.Fatalf("absent columns must stay nil: %+v", c)
		}
		if !strings.Contains(db.lastSQL, "WHERE course_id = $1") || !strings.Contains(db.lastSQL, "LIMIT 1") {
			t.Fatalf("SQL = %q", db.lastSQL)
		}
		if len(db.lastArgs) != 1 || db.lastArgs[0] != int64(7) {
			t.Fatalf("args = %v", db.lastArgs)
		}
	})

	t.Run("present zero", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{values: []any{int64(8), "Lab", "LAB0", "", 0, int64(3)}}}
		repo := NewCourseRepository(db, testLog)

		c, _, err := repo.GetByID(context.Background(), 8)
		if err != nil {
			t.Fatal(err)
		}
		if c.Description == nil || *c.Description != "" {
			t.Fatalf("Description = %v", c.Description)
		}
		if c.Credits == nil || *c.Credits != 0 {
			t.Fatalf("Credits = %v, want present zero", c.Credits)
		}
		if c.TeacherID == nil || *c.TeacherID != 3 {
			t.Fatalf("TeacherID = %v", c.TeacherID)
		}
	})
}

func TestGetByIDNotFoundIsNotAnError(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
	repo := NewExamRepository(db, testLog)

	e, found, err := repo.GetByID(context.Background(), 404)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if found || e.ID != 0 {
		t.Fatalf("found=%v exam=%+v", found, e)
	}
}

func TestGetByIDFailureIsDistinctFromNotFound(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: errors.New("i/o timeout")}}
	repo := NewExamRepository(db, testLog)

	_, found, err := repo.GetByID(context.Background(), 1)
	if found {
		t.Fatal("found must be false on failure")
	}
	if !errors.Is(err, apperror.ErrPersistence) {
		t.Fatalf("err = %v", err)
	}
}

func TestGetAllEmptyIsNonNil(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{}}
	repo := NewStudentRepository(db, testLog)

	students, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if students == nil || len(students) != 0 {
		t.Fatalf("students = %#v", students)
	}
	if !db.rows.closed {
		t.Fatal("rows not closed")
	}
}

func TestGetAllOrdering(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		run   func(db DBTX) error
		order string
	}{
		{
			name: "students",
			run: func(db DBTX) error {
				_, err := NewStudentRepository(db, testLog).GetAll(ctx)
				return err
			},
			order: "ORDER BY last_name, first_name, student_id ASC",
		},
		{
			name: "teachers",
			run: func(db DBTX) error {
				_, err := NewTeacherRepository(db, testLog).GetAll(ctx)
				return err
			},
			order: "ORDER BY last_name, first_name, teacher_id ASC",
		},
		{
			name: "courses",
			run: func(db DBTX) error {
				_, err := NewCourseRepository(db, testLog).GetAll(ctx)
				return err
			},
			order: "ORDER BY course_name, course_id ASC",
		},
		{
			name: "exams",
			run: func(db DBTX) error {
				_, err := NewExamRepository(db, testLog).GetAll(ctx)
				return err
			},
			order: "ORDER BY exam_date DESC, exam_id ASC",
		},
		{
			name: "payments",
			run: func(db DBTX) error {
				_, err := NewPaymentRepository(db, testLog).GetAll(ctx)
				return err
			},
			order: "ORDER BY payment_date DESC, payment_id ASC",
		},
		{
			name: "users",
			run: func(db DBTX) error {
				_, err := NewUserRepository(db, testLog).GetAll(ctx)
				return err
			},
			order: "ORDER BY username, user_id ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDB{}
			if err := tt.run(db); err != nil {
				t.Fatal(err)
			}
			if !strings.HasSuffix(db.lastSQL, tt.order) {
				t.Fatalf("SQL %q does not end with %q", db.lastSQL, tt.order)
			}
		})
	}
}

func TestGetAllMapsEveryRow(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{data: [][]any{
		{int64(2), int64(10), nil, "1234.56", date(2025, time.May, 2), int64(1), "Tuition", "INV-002"},
		{int64(1), int64(11), int64(4), "99.90", date(2025, time.April, 1), nil, nil, nil},
	}}}
	repo := NewPaymentRepository(db, testLog)

	payments, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(payments) != 2 {
		t.Fatalf("len = %d", len(payments))
	}
	first := payments[0]
	if first.ID != 2 || first.CourseID != nil || first.InvoiceNumber == nil || *first.InvoiceNumber != "INV-002" {
		t.Fatalf("first = %+v", first)
	}
	if !first.Amount.Equal(decimal.RequireFromString("1234.56")) {
		t.Fatalf("amount = %s", first.Amount)
	}
	if payments[1].PaymentMethodID != nil || payments[1].CourseID == nil || *payments[1].CourseID != 4 {
		t.Fatalf("second = %+v", payments[1])
	}
}

func TestGetAllScanErrorClosesRows(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{data: [][]any{{int64(1)}}, scanErr: errors.New("bad column")}}
	repo := NewExamRepository(db, testLog)

	exams, err := repo.GetAll(context.Background())
	if !errors.Is(err, apperror.ErrPersistence) || exams != nil {
		t.Fatalf("exams=%v err=%v", exams, err)
	}
	if !db.rows.closed {
		t.Fatal("rows not closed on error path")
	}
}

func TestUpdate(t *testing.T) {
	t.Run("one row", func(t *testing.T) {
		db := &fakeDB{tag: pgconn.NewCommandTag("UPDATE 1")}
		repo := NewCourseRepository(db, testLog)

		c := model.Course{ID: 3, CourseName: "Physics", CourseCode: "PHY1", Credits: ptr(4)}
		ok, err := repo.Update(context.Background(), &c)
		if err != nil || !ok {
			t.Fatalf("ok=%v err=%v", ok, err)
		}
		for _, frag := range []string{"UPDATE courses SET course_name = $1", "teacher_id = $5", "WHERE course_id = $6"} {
			if !strings.Contains(db.lastSQL, frag) {
				t.Errorf("SQL %q missing %q", db.lastSQL, frag)
			}
		}
		if got := db.lastArgs[len(db.lastArgs)-1]; got != int64(3) {
			t.Fatalf("identity arg = %v", got)
		}
		if db.lastArgs[4] != (*int64)(nil) {
			t.Fatalf("absent teacher must bind nil, got %#v", db.lastArgs[4])
		}
	})

	t.Run("missing row", func(t *testing.T) {
		db := &fakeDB{tag: pgconn.NewCommandTag("UPDATE 0")}
		repo := NewCourseRepository(db, testLog)

		ok, err := repo.Update(context.Background(), &model.Course{ID: 77, CourseName: "X", CourseCode: "X"})
		if err != nil || ok {
			t.Fatalf("ok=%v err=%v", ok, err)
		}
	})

	t.Run("unassigned identity", func(t *testing.T) {
		db := &fakeDB{}
		repo := NewCourseRepository(db, testLog)

		ok, err := repo.Update(context.Background(), &model.Course{CourseName: "X", CourseCode: "X"})
		if err != nil || ok {
			t.Fatalf("ok=%v err=%v", ok, err)
		}
		if db.calls != 0 {
			t.Fatal("no statement expected for an unassigned identity")
		}
	})

	t.Run("failure", func(t *testing.T) {
		db := &fakeDB{err: &pgconn.PgError{Code: "23505"}}
		repo := NewCourseRepository(db, testLog)

		_, err := repo.Update(context.Background(), &model.Course{ID: 1, CourseName: "X", CourseCode: "X"})
		if !errors.Is(err, apperror.ErrDuplicate) || !errors.Is(err, apperror.ErrPersistence) {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestUpdateBindsExactAmount(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("UPDATE 1")}
	repo := NewPaymentRepository(db, testLog)

	p := model.Payment{ID: 9, StudentID: 1, Amount: decimal.RequireFromString("1234.56"), PaymentDate: date(2025, time.June, 1)}
	if _, err := repo.Update(context.Background(), &p); err != nil {
		t.Fatal(err)
	}
	amount, ok := db.lastArgs[2].(decimal.Decimal)
	if !ok {
		t.Fatalf("amount arg is %T", db.lastArgs[2])
	}
	if amount.String() != "1234.56" {
		t.Fatalf("amount = %s", amount)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name string
		id   int64
		tag  string
		want bool
	}{
		{"removed", 5, "DELETE 1", true},
		{"absent", 6, "DELETE 0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDB{tag: pgconn.NewCommandTag(tt.tag)}
			repo := NewPaymentRepository(db, testLog)

			ok, err := repo.Delete(context.Background(), tt.id)
			if err != nil || ok != tt.want {
				t.Fatalf("ok=%v err=%v", ok, err)
			}
			if db.lastSQL != "DELETE FROM payments WHERE payment_id = $1" {
				t.Fatalf("SQL = %q", db.lastSQL)
			}
		})
	}

	t.Run("unassigned identity", func(t *testing.T) {
		db := &fakeDB{}
		ok, err := NewPaymentRepository(db, testLog).Delete(context.Background(), 0)
		if ok || err != nil || db.calls != 0 {
			t.Fatalf("ok=%v err=%v calls=%d", ok, err, db.calls)
		}
	})
}

func TestUserLookupAndPasswordUpdate(t *testing.T) {
	created := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)
	db := &fakeDB{row: fakeRow{values: []any{int64(1), "alice", "$2a$hash", "alice@example.com", 1, created}}}
	repo := NewUserRepository(db, testLog)

	u, found, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if u.Email == nil || *u.Email != "alice@example.com" || u.RoleID != 1 || !u.CreatedAt.Equal(created) {
		t.Fatalf("user = %+v", u)
	}
	if !strings.Contains(db.lastSQL, "WHERE username = $1") || db.lastArgs[0] != "alice" {
		t.Fatalf("SQL = %q args = %v", db.lastSQL, db.lastArgs)
	}

	db.tag = pgconn.NewCommandTag("UPDATE 1")
	ok, err := repo.UpdatePassword(context.Background(), 1, "$2a$new")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if db.lastSQL != "UPDATE users SET password_hash = $1 WHERE user_id = $2" {
		t.Fatalf("SQL = %q", db.lastSQL)
	}
}
