package employee

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"ems/inner/common"
	"ems/inner/validator"
)

const dateLayout = "2006-01-02"

// ограничения колонок таблицы employee
const (
	maxTextLen  = 100
	maxEmailLen = 255
	// NUMERIC(12, 2)
	maxSalary = 9999999999.99
)

var requiredFields = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"email":      true,
	"role_title": true,
}

// Optional значение поля после нормализации.
// Set - поле пришло в запросе; Valid=false означает запись NULL.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: value}
}

func nullOf[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// Ptr значение для записи в nullable колонку
func (o Optional[T]) Ptr() *T {
	if !o.Set || !o.Valid {
		return nil
	}
	value := o.Value
	return &value
}

// Normalized проверенные и приведённые к типам данные сотрудника
type Normalized struct {
	FirstName      Optional[string]
	LastName       Optional[string]
	Email          Optional[string]
	RoleTitle      Optional[string]
	DepartmentId   Optional[int64]
	ManagerId      Optional[int64]
	EmploymentType Optional[EmploymentType]
	Status         Optional[Status]
	Location       Optional[string]
	HireDate       Optional[time.Time]
	Salary         Optional[float64]
}

// FormatChecker проверка значения по тегу go-playground/validator
type FormatChecker interface {
	Var(value any, tag string) bool
}

// Normalize проверяет Payload и приводит значения к типам.
// allowPartial=true для PATCH: отсутствующие поля пропускаются.
// Возвращает validator.ValidationErrors со всеми ошибками сразу.
func Normalize(payload Payload, allowPartial bool, checker FormatChecker) (Normalized, error) {
	var n Normalized
	var errs validator.ValidationErrors

	for _, f := range payload.fields() {
		if !f.field.Present {
			// при создании отсутствующее обязательное поле всё равно ошибка
			if !allowPartial && requiredFields[f.name] {
				errs.Add(f.name, "required", "")
			}
			continue
		}
		if f.field.Invalid {
			errs.Add(f.name, "invalid", f.field.Raw)
			continue
		}
		if tag := n.apply(f.name, *f.field, checker); tag != "" {
			errs.Add(f.name, tag, f.field.Raw)
		}
	}
	for _, key := range payload.Unknown {
		errs.Add(key, "unknown", "")
	}

	if !errs.Empty() {
		return Normalized{}, errs
	}
	if !allowPartial {
		if !n.Status.Set {
			n.Status = some(StatusActive)
		}
		if !n.EmploymentType.Set {
			n.EmploymentType = some(EmploymentFullTime)
		}
	}
	return n, nil
}

// apply разбирает одно поле в n и возвращает тег ошибки или пустую строку
func (n *Normalized) apply(name string, field Field, checker FormatChecker) string {
	switch name {
	case "first_name":
		return requiredText(field, checker, &n.FirstName)
	case "last_name":
		return requiredText(field, checker, &n.LastName)
	case "role_title":
		return requiredText(field, checker, &n.RoleTitle)
	case "email":
		if field.Empty() {
			return "required"
		}
		if !checker.Var(field.Trimmed(), maxTag(maxEmailLen)) {
			return maxTag(maxEmailLen)
		}
		if !checker.Var(field.Trimmed(), "email") {
			return "email"
		}
		n.Email = some(field.Trimmed())
	case "status":
		if field.Empty() {
			return ""
		}
		status, ok := ParseStatus(field.Raw)
		if !ok {
			return "oneof"
		}
		n.Status = some(status)
	case "employment_type":
		if field.Empty() {
			return ""
		}
		employmentType, ok := ParseEmploymentType(field.Raw)
		if !ok {
			return "oneof"
		}
		n.EmploymentType = some(employmentType)
	case "department_id":
		if field.Empty() {
			n.DepartmentId = nullOf[int64]()
			return ""
		}
		id, ok := parseInteger(field.Trimmed())
		if !ok {
			return "integer"
		}
		n.DepartmentId = some(id)
	case "manager_id":
		if field.Empty() {
			n.ManagerId = nullOf[int64]()
			return ""
		}
		id, ok := parseInteger(field.Trimmed())
		if !ok {
			return "integer"
		}
		if id < 1 {
			return "gt"
		}
		n.ManagerId = some(id)
	case "salary":
		if field.Empty() {
			n.Salary = nullOf[float64]()
			return ""
		}
		salary, err := strconv.ParseFloat(field.Trimmed(), 64)
		if err != nil || math.IsNaN(salary) || math.IsInf(salary, 0) {
			return "numeric"
		}
		if salary <= 0 {
			return "gt"
		}
		if math.Round(salary*100)/100 > maxSalary {
			return fmt.Sprintf("lte=%.2f", maxSalary)
		}
		n.Salary = some(salary)
	case "hire_date":
		if field.Empty() {
			n.HireDate = nullOf[time.Time]()
			return ""
		}
		hireDate, ok := parseDate(field.Trimmed(), checker)
		if !ok {
			return "datetime"
		}
		n.HireDate = some(hireDate)
	case "location":
		if field.Empty() {
			n.Location = nullOf[string]()
			return ""
		}
		return boundedText(field, checker, &n.Location)
	}
	return ""
}

func requiredText(field Field, checker FormatChecker, target *Optional[string]) string {
	if field.Empty() {
		return "required"
	}
	return boundedText(field, checker, target)
}

// boundedText длина считается в символах, как у VARCHAR
func boundedText(field Field, checker FormatChecker, target *Optional[string]) string {
	if !checker.Var(field.Trimmed(), maxTag(maxTextLen)) {
		return maxTag(maxTextLen)
	}
	*target = some(field.Trimmed())
	return ""
}

func maxTag(length int) string {
	return "max=" + strconv.Itoa(length)
}

// parseInteger принимает "7", "7.0" и 7 из JSON, но не "7.5"
func parseInteger(raw string) (int64, bool) {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}

// parseDate каноничный формат YYYY-MM-DD; полная метка RFC3339 обрезается до даты
func parseDate(raw string, checker FormatChecker) (time.Time, bool) {
	if checker.Var(raw, "datetime="+dateLayout) {
		date, err := time.Parse(dateLayout, raw)
		return date, err == nil
	}
	if timestamp, err := time.Parse(time.RFC3339, raw); err == nil {
		year, month, day := timestamp.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// Empty ни одно поле не передано
func (n Normalized) Empty() bool {
	return len(n.Assignments()) == 0
}

// Assignment пара колонка-значение для INSERT/UPDATE
type Assignment struct {
	Column string
	Value  any
}

// Assignments переданные поля в порядке схемы; nil означает NULL
func (n Normalized) Assignments() []Assignment {
	var assignments []Assignment
	add := func(column string, set bool, value any) {
		if set {
			assignments = append(assignments, Assignment{Column: column, Value: value})
		}
	}
	add("first_name", n.FirstName.Set, n.FirstName.Value)
	add("last_name", n.LastName.Set, n.LastName.Value)
	add("email", n.Email.Set, n.Email.Value)
	add("role_title", n.RoleTitle.Set, n.RoleTitle.Value)
	add("department_id", n.DepartmentId.Set, nullable(n.DepartmentId))
	add("manager_id", n.ManagerId.Set, nullable(n.ManagerId))
	add("employment_type", n.EmploymentType.Set, string(n.EmploymentType.Value))
	add("status", n.Status.Set, string(n.Status.Value))
	add("location", n.Location.Set, nullable(n.Location))
	add("hire_date", n.HireDate.Set, nullable(n.HireDate))
	add("salary", n.Salary.Set, nullable(n.Salary))
	return assignments
}

func nullable[T any](o Optional[T]) any {
	if !o.Valid {
		return nil
	}
	return o.Value
}

// ToEntity данные для INSERT; вызывается только после Normalize в режиме создания
func (n Normalized) ToEntity() Entity {
	return Entity{
		FirstName:      n.FirstName.Value,
		LastName:       n.LastName.Value,
		Email:          n.Email.Value,
		RoleTitle:      n.RoleTitle.Value,
		DepartmentId:   n.DepartmentId.Ptr(),
		ManagerId:      n.ManagerId.Ptr(),
		EmploymentType: string(n.EmploymentType.Value),
		Status:         string(n.Status.Value),
		Location:       n.Location.Ptr(),
		HireDate:       n.HireDate.Ptr(),
		Salary:         n.Salary.Ptr(),
	}
}

// ReferenceChecker проверка существования связанных записей
type ReferenceChecker interface {
	DepartmentExists(ctx context.Context, id int64) (bool, error)
	EmployeeExists(ctx context.Context, id int64) (bool, error)
}

// CheckReferences проверяет department_id и manager_id до записи.
// selfId - id изменяемого сотрудника, 0 при создании.
func CheckReferences(ctx context.Context, n Normalized, selfId int64, refs ReferenceChecker) error {
	var errs validator.ValidationErrors

	if id := n.DepartmentId.Ptr(); id != nil {
		exists, err := refs.DepartmentExists(ctx, *id)
		if err != nil {
			return fmt.Errorf("error checking department %d: %w", *id, err)
		}
		if !exists {
			errs.Add("department_id", "exists", strconv.FormatInt(*id, 10))
		}
	}
	if id := n.ManagerId.Ptr(); id != nil {
		if selfId != 0 && *id == selfId {
			errs.Add("manager_id", "self", strconv.FormatInt(*id, 10))
		} else {
			exists, err := refs.EmployeeExists(ctx, *id)
			if err != nil {
				return fmt.Errorf("error checking manager %d: %w", *id, err)
			}
			if !exists {
				errs.Add("manager_id", "exists", strconv.FormatInt(*id, 10))
			}
		}
	}

	if !errs.Empty() {
		return common.ReferenceNotFoundError{
			Message: "Referenced record not found",
			Data:    errs.Errors,
		}
	}
	return nil
}
