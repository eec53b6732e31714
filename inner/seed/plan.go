package seed

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"ems/inner/employee"

	"github.com/brianvoe/gofakeit"
	"github.com/icrowley/fake"
)

var (
	employmentTypes = []string{
		string(employee.EmploymentFullTime), string(employee.EmploymentPartTime), string(employee.EmploymentContract),
	}
	statuses = []string{string(employee.StatusActive), string(employee.StatusInactive)}
)

func pick[T any](items []T) T {
	return items[gofakeit.Number(0, len(items)-1)]
}

func ptr[T any](value T) *T {
	return &value
}

func hireDate(fromYear, toYear int) *time.Time {
	from := time.Date(fromYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(toYear, time.December, 28, 0, 0, 0, 0, time.UTC)
	date := gofakeit.DateRange(from, to).Truncate(24 * time.Hour)
	return &date
}

// emailFor адрес вида first.last7@example.com; в локальной части только латиница
func emailFor(first, last string, n int) string {
	clean := func(s string) string {
		return strings.Map(func(r rune) rune {
			if r < unicode.MaxASCII && unicode.IsLetter(r) {
				return unicode.ToLower(r)
			}
			return -1
		}, s)
	}
	return fmt.Sprintf("%s.%s%d@example.com", clean(first), clean(last), n)
}

func newManager(email string, departmentId int64) employee.Entity {
	return employee.Entity{
		FirstName:      fake.FirstName(),
		LastName:       fake.LastName(),
		Email:          email,
		RoleTitle:      "Manager",
		DepartmentId:   &departmentId,
		EmploymentType: string(employee.EmploymentFullTime),
		Status:         string(employee.StatusActive),
		Location:       ptr(pick(Cities)),
		HireDate:       hireDate(2017, 2023),
		Salary:         ptr(float64(gofakeit.Number(120000, 180000))),
	}
}

func newEmployee(n int, department DepartmentSeed, departmentId int64, managerIds []int64) employee.Entity {
	first, last := fake.FirstName(), fake.LastName()
	entity := employee.Entity{
		FirstName:      first,
		LastName:       last,
		Email:          emailFor(first, last, n),
		RoleTitle:      pick(department.Titles),
		DepartmentId:   &departmentId,
		EmploymentType: pick(employmentTypes),
		Status:         pick(statuses),
		Location:       ptr(pick(Cities)),
		HireDate:       hireDate(2018, 2024),
		Salary:         ptr(float64(gofakeit.Number(department.SalaryMin, department.SalaryMax))),
	}
	if len(managerIds) > 0 && gofakeit.Number(1, 100) <= managerShare {
		entity.ManagerId = ptr(pick(managerIds))
	}
	return entity
}

// planEmployees раскладывает count сотрудников по случайным отделам
func planEmployees(count int, departmentIds map[string]int64, managerIds []int64) map[string][]employee.Entity {
	plan := make(map[string][]employee.Entity, len(Departments))
	for n := 0; n < count; n++ {
		department := pick(Departments)
		plan[department.Name] = append(plan[department.Name],
			newEmployee(n, department, departmentIds[department.Name], managerIds))
	}
	return plan
}
