package employee

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// Field сырое значение одного поля из JSON.
// Отличает отсутствующее поле от переданного null или пустой строки.
type Field struct {
	Present bool
	Null    bool
	// объект или массив вместо скалярного значения
	Invalid bool
	Raw     string
}

func (f *Field) UnmarshalJSON(data []byte) error {
	f.Present = true
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		f.Null = true
		return nil
	}
	switch trimmed[0] {
	case 'n':
		f.Null = true
	case '"':
		return json.Unmarshal(trimmed, &f.Raw)
	case '{', '[':
		f.Invalid = true
		f.Raw = string(trimmed)
	default:
		// числа и true/false храним как текст, дальше они разбираются так же, как строки
		f.Raw = string(trimmed)
	}
	return nil
}

// Empty поле отсутствует, равно null или пустой строке после trim
func (f Field) Empty() bool {
	return !f.Present || f.Null || strings.TrimSpace(f.Raw) == ""
}

func (f Field) Trimmed() string {
	return strings.TrimSpace(f.Raw)
}

// Payload схема тела запроса на создание и изменение сотрудника
type Payload struct {
	FirstName      Field `json:"first_name"`
	LastName       Field `json:"last_name"`
	Email          Field `json:"email"`
	RoleTitle      Field `json:"role_title"`
	DepartmentId   Field `json:"department_id"`
	ManagerId      Field `json:"manager_id"`
	EmploymentType Field `json:"employment_type"`
	Status         Field `json:"status"`
	Location       Field `json:"location"`
	HireDate       Field `json:"hire_date"`
	Salary         Field `json:"salary"`
	// ключи, которых нет в схеме; отсортированы
	Unknown []string `json:"-"`
}

type namedField struct {
	name  string
	field *Field
}

// fields поля схемы в фиксированном порядке, в нём же выдаются ошибки валидации
func (p *Payload) fields() []namedField {
	return []namedField{
		{"first_name", &p.FirstName},
		{"last_name", &p.LastName},
		{"email", &p.Email},
		{"role_title", &p.RoleTitle},
		{"department_id", &p.DepartmentId},
		{"manager_id", &p.ManagerId},
		{"employment_type", &p.EmploymentType},
		{"status", &p.Status},
		{"location", &p.Location},
		{"hire_date", &p.HireDate},
		{"salary", &p.Salary},
	}
}

var ErrPayloadNotObject = errors.New("request body must be a JSON object")

// ParsePayload разбирает тело запроса в Payload; неизвестные ключи складываются в Unknown
func ParsePayload(body []byte) (Payload, error) {
	var payload Payload
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return payload, err
	}
	if raw == nil {
		return payload, ErrPayloadNotObject
	}

	known := make(map[string]*Field)
	for _, f := range payload.fields() {
		known[f.name] = f.field
	}
	for key, value := range raw {
		field, ok := known[key]
		if !ok {
			payload.Unknown = append(payload.Unknown, key)
			continue
		}
		if err := field.UnmarshalJSON(value); err != nil {
			return payload, err
		}
	}
	sort.Strings(payload.Unknown)
	return payload, nil
}

// PayloadFromStrings удобный конструктор для значений, пришедших строками (формы, сидер, тесты)
func PayloadFromStrings(values map[string]string) Payload {
	var payload Payload
	known := make(map[string]*Field)
	for _, f := range payload.fields() {
		known[f.name] = f.field
	}
	for key, value := range values {
		if field, ok := known[key]; ok {
			*field = Field{Present: true, Raw: value}
			continue
		}
		payload.Unknown = append(payload.Unknown, key)
	}
	sort.Strings(payload.Unknown)
	return payload
}
