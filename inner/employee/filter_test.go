package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestCriteriaFromQuery(t *testing.T) {
	tests := []struct {
		name         string
		q            string
		search       string
		departmentId string
		status       string
		expected     Criteria
	}{
		{
			name:     "empty query",
			expected: Criteria{},
		},
		{
			name:     "q wins over search",
			q:        " ann ",
			search:   "bob",
			expected: Criteria{Search: "ann"},
		},
		{
			name:     "search used when q is blank",
			q:        "   ",
			search:   "bob",
			expected: Criteria{Search: "bob"},
		},
		{
			name:         "department id parsed",
			departmentId: "3",
			expected:     Criteria{DepartmentId: int64Ptr(3)},
		},
		{
			name:         "non integer department id ignored",
			departmentId: "abc",
			expected:     Criteria{},
		},
		{
			name:     "status upper cased",
			status:   "inactive",
			expected: Criteria{Status: "INACTIVE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CriteriaFromQuery(tt.q, tt.search, tt.departmentId, tt.status)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPredicate_Empty(t *testing.T) {
	p := Criteria{}.Predicate()

	assert.Equal(t, "", p.Where())
	assert.Empty(t, p.Args())
	assert.Equal(t, 0, p.Len())
}

func TestPredicate_AllCriteria(t *testing.T) {
	p := Criteria{Search: "ann", DepartmentId: int64Ptr(3), Status: "ACTIVE"}.Predicate()

	assert.Equal(t,
		"WHERE (e.first_name ILIKE $1 OR e.last_name ILIKE $1 OR e.email ILIKE $1) AND e.department_id = $2 AND e.status = $3",
		p.Where())
	assert.Equal(t, []any{"%ann%", int64(3), "ACTIVE"}, p.Args())
	assert.Equal(t, 3, p.Len())
}

func TestPredicate_PlaceholdersMatchArgs(t *testing.T) {
	p := Criteria{DepartmentId: int64Ptr(7), Status: "INACTIVE"}.Predicate()

	assert.Equal(t, "WHERE e.department_id = $1 AND e.status = $2", p.Where())
	assert.Len(t, p.Args(), 2)
}

func TestPredicate_EscapesLikeMetacharacters(t *testing.T) {
	p := Criteria{Search: `50%_off\`}.Predicate()

	require.Len(t, p.Args(), 1)
	assert.Equal(t, `%50\%\_off\\%`, p.Args()[0])
}

func TestPredicate_ArgsIsCopy(t *testing.T) {
	p := Criteria{Status: "ACTIVE"}.Predicate()

	args := p.Args()
	args = append(args, 10, 0)
	args[0] = "changed"

	assert.Equal(t, []any{"ACTIVE"}, p.Args())
	assert.Len(t, args, 3)
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		name     string
		sort     string
		order    string
		expected string
	}{
		{"default", "", "", "e.last_name ASC, e.first_name ASC, e.id ASC"},
		{"unknown column falls back to name", "password", "desc", "e.last_name DESC, e.first_name DESC, e.id DESC"},
		{"id has no tiebreaker", "id", "desc", "e.id DESC"},
		{"hire date nulls last", "HIRE_DATE", "asc", "e.hire_date ASC NULLS LAST, e.id ASC"},
		{"salary", "salary", "DESC", "e.salary DESC NULLS LAST, e.id DESC"},
		{"created at", "created_at", "whatever", "e.created_at ASC, e.id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseOrder(tt.sort, tt.order).SQL())
		})
	}
}
