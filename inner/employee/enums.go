package employee

import "strings"

// Status статус сотрудника
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// EmploymentType тип занятости
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "FT"
	EmploymentPartTime EmploymentType = "PT"
	EmploymentContract EmploymentType = "CONTRACT"
)

// ParseStatus приводит значение к верхнему регистру и проверяет его по закрытому набору
func ParseStatus(raw string) (Status, bool) {
	switch status := Status(strings.ToUpper(strings.TrimSpace(raw))); status {
	case StatusActive, StatusInactive:
		return status, true
	default:
		return "", false
	}
}

// ParseEmploymentType приводит значение к верхнему регистру и проверяет его по закрытому набору
func ParseEmploymentType(raw string) (EmploymentType, bool) {
	switch employmentType := EmploymentType(strings.ToUpper(strings.TrimSpace(raw))); employmentType {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract:
		return employmentType, true
	default:
		return "", false
	}
}
