package employee

import (
	"fmt"
	"strconv"
	"strings"
)

// Criteria параметры фильтрации списка сотрудников, живут в пределах одного запроса
type Criteria struct {
	Search       string
	DepartmentId *int64
	Status       string
}

// CriteriaFromQuery собирает Criteria из сырых параметров запроса.
// q имеет приоритет над search; department_id, который не является целым числом, игнорируется.
func CriteriaFromQuery(q, search, departmentId, status string) Criteria {
	var criteria Criteria

	criteria.Search = strings.TrimSpace(q)
	if criteria.Search == "" {
		criteria.Search = strings.TrimSpace(search)
	}

	if id, err := strconv.ParseInt(strings.TrimSpace(departmentId), 10, 64); err == nil {
		criteria.DepartmentId = &id
	}

	criteria.Status = strings.ToUpper(strings.TrimSpace(status))
	return criteria
}

// Predicate условие WHERE и параметры к нему.
// Один и тот же Predicate используется и для подсчёта, и для выборки страницы.
type Predicate struct {
	clauses []string
	args    []any
}

// Predicate строит условия над таблицей employee с алиасом e.
// Поиск идёт по first_name, last_name и email по отдельности, без склейки полного имени.
func (c Criteria) Predicate() Predicate {
	var p Predicate

	if c.Search != "" {
		n := p.bind("%" + escapeLike(c.Search) + "%")
		p.clauses = append(p.clauses,
			fmt.Sprintf("(e.first_name ILIKE %[1]s OR e.last_name ILIKE %[1]s OR e.email ILIKE %[1]s)", n))
	}
	if c.DepartmentId != nil {
		p.clauses = append(p.clauses, "e.department_id = "+p.bind(*c.DepartmentId))
	}
	if c.Status != "" {
		p.clauses = append(p.clauses, "e.status = "+p.bind(c.Status))
	}
	return p
}

// bind добавляет параметр и возвращает его плейсхолдер
func (p *Predicate) bind(value any) string {
	p.args = append(p.args, value)
	return "$" + strconv.Itoa(len(p.args))
}

// Where возвращает "WHERE ..." или пустую строку, если условий нет
func (p Predicate) Where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(p.clauses, " AND ")
}

// Args возвращает копию параметров, чтобы LIMIT/OFFSET не попали в сам Predicate
func (p Predicate) Args() []any {
	args := make([]any, len(p.args))
	copy(args, p.args)
	return args
}

// Len количество активных условий
func (p Predicate) Len() int {
	return len(p.clauses)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Order сортировка списка, только из белого списка колонок
type Order struct {
	Column string
	Desc   bool
}

var orderColumns = map[string]string{
	"name":       "e.last_name %[1]s, e.first_name %[1]s",
	"id":         "e.id %[1]s",
	"hire_date":  "e.hire_date %[1]s NULLS LAST",
	"created_at": "e.created_at %[1]s",
	"salary":     "e.salary %[1]s NULLS LAST",
}

// ParseOrder разбирает параметры sort и order; неизвестная колонка даёт сортировку по имени
func ParseOrder(sort, order string) Order {
	column := strings.ToLower(strings.TrimSpace(sort))
	if _, ok := orderColumns[column]; !ok {
		column = "name"
	}
	return Order{
		Column: column,
		Desc:   strings.EqualFold(strings.TrimSpace(order), "desc"),
	}
}

// SQL возвращает выражение для ORDER BY; id всегда последний, чтобы порядок был стабильным
func (o Order) SQL() string {
	expr, ok := orderColumns[o.Column]
	if !ok {
		expr = orderColumns["name"]
	}
	direction := "ASC"
	if o.Desc {
		direction = "DESC"
	}
	sql := fmt.Sprintf(expr, direction)
	if o.Column != "id" {
		sql += ", e.id " + direction
	}
	return sql
}
