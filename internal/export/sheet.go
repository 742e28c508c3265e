// Package export turns record lists into tabular sheets and writes them as
// spreadsheets or terminal tables. It formats values the way the admin
// screens show them and does no layout beyond a header row.
package export

import (
	"context"
	"sort"
	"strconv"

	"github.com/stemsi/institute-admin/internal/model"
)

// Sheet is one titled table of string cells.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Loader fetches all records of one entity as a sheet.
type Loader func(ctx context.Context) (Sheet, error)

// Catalog maps the entity names used in URLs and flags to their loaders.
type Catalog map[string]Loader

// Names returns the catalog's entity names in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for n := range c {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lister is the read-all half of a repository.
type Lister[E any] interface {
	GetAll(ctx context.Context) ([]E, error)
}

// Sources are the repositories a Catalog reads from.
type Sources struct {
	Students Lister[model.Student]
	Teachers Lister[model.Teacher]
	Courses  Lister[model.Course]
	Exams    Lister[model.Exam]
	Payments Lister[model.Payment]
	Users    Lister[model.User]
}

// NewCatalog builds the loaders for every entity in src.
func NewCatalog(src Sources) Catalog {
	return Catalog{
		"students": load(src.Students, StudentsSheet),
		"teachers": load(src.Teachers, TeachersSheet),
		"courses":  load(src.Courses, CoursesSheet),
		"exams":    load(src.Exams, ExamsSheet),
		"payments": load(src.Payments, PaymentsSheet),
		"users":    load(src.Users, UsersSheet),
	}
}

func load[E any](l Lister[E], build func([]E) Sheet) Loader {
	return func(ctx context.Context) (Sheet, error) {
		items, err := l.GetAll(ctx)
		if err != nil {
			return Sheet{}, err
		}
		return build(items), nil
	}
}

func StudentsSheet(items []model.Student) Sheet {
	s := Sheet{
		Name:   "Students",
		Header: []string{"ID", "First Name", "Last Name", "Date of Birth", "Email", "Phone", "Address", "Enrollment Date"},
	}
	for _, st := range items {
		s.Rows = append(s.Rows, []string{
			id(st.ID), st.FirstName, st.LastName, model.FormatDisplayDate(st.DateOfBirth),
			st.Email, st.Phone, st.Address, model.FormatDisplayDate(st.EnrollmentDate),
		})
	}
	return s
}

func TeachersSheet(items []model.Teacher) Sheet {
	s := Sheet{
		Name:   "Teachers",
		Header: []string{"ID", "First Name", "Last Name", "Email", "Phone", "Specialization", "Hire Date", "User ID"},
	}
	for _, t := range items {
		s.Rows = append(s.Rows, []string{
			id(t.ID), t.FirstName, t.LastName, t.Email, t.Phone, t.SubjectSpecialization,
			model.FormatDisplayDate(t.HireDate), optID(t.UserID),
		})
	}
	return s
}

func CoursesSheet(items []model.Course) Sheet {
	s := Sheet{
		Name:   "Courses",
		Header: []string{"ID", "Course Name", "Code", "Description", "Credits", "Teacher ID"},
	}
	for _, c := range items {
		credits := ""
		if c.Credits != nil {
			credits = strconv.Itoa(*c.Credits)
		}
		s.Rows = append(s.Rows, []string{
			id(c.ID), c.CourseName, c.CourseCode, optString(c.Description), credits, optID(c.TeacherID),
		})
	}
	return s
}

func ExamsSheet(items []model.Exam) Sheet {
	s := Sheet{
		Name:   "Exams",
		Header: []string{"ID", "Exam Name", "Exam Date", "Course ID", "Max Marks"},
	}
	for _, e := range items {
		date := ""
		if !e.ExamDate.IsZero() {
			date = e.ExamDate.Format(model.DisplayTimeLayout)
		}
		s.Rows = append(s.Rows, []string{
			id(e.ID), e.ExamName, date, optID(e.CourseID), strconv.Itoa(e.MaxMarks),
		})
	}
	return s
}

func PaymentsSheet(items []model.Payment) Sheet {
	s := Sheet{
		Name:   "Payments",
		Header: []string{"ID", "Student ID", "Course ID", "Amount", "Payment Date", "Method ID", "Description", "Invoice"},
	}
	for _, p := range items {
		s.Rows = append(s.Rows, []string{
			id(p.ID), id(p.StudentID), optID(p.CourseID), p.Amount.StringFixed(2),
			model.FormatDisplayDate(p.PaymentDate), optID(p.PaymentMethodID),
			optString(p.Description), optString(p.InvoiceNumber),
		})
	}
	return s
}

// UsersSheet never includes password hashes.
func UsersSheet(items []model.User) Sheet {
	s := Sheet{
		Name:   "Users",
		Header: []string{"ID", "Username", "Email", "Role", "Created At"},
	}
	for _, u := range items {
		s.Rows = append(s.Rows, []string{
			id(u.ID), u.Username, optString(u.Email), model.RoleName(u.RoleID),
			u.CreatedAt.Format(model.DisplayTimeLayout),
		})
	}
	return s
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func optID(v *int64) string {
	if v == nil {
		return ""
	}
	return id(*v)
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
