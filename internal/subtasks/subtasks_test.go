package subtasks

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklane/internal/models"
)

func children() []models.Task {
	return []models.Task{
		{ID: "t1", Status: models.StatusTodo, Type: models.TypeBug, Priority: models.PriorityHigh, AssignedTo: []string{"me-user"}},
		{ID: "t2", Status: models.StatusInProgress, Type: models.TypeFeature, Priority: models.PriorityLow, AssignedTo: []string{"me-user", "x"}},
		{ID: "t3", Status: models.StatusTodo, Type: models.TypeFeature, Priority: models.PriorityHigh, AssignedTo: []string{"x"}},
		{ID: "t4", Status: models.StatusClosed, Type: models.TypeDocumentation, Priority: models.PriorityMedium},
		{ID: "t5", Status: models.StatusResolved, Type: models.TypeBug, Priority: models.PriorityCritical, AssignedTo: []string{"me-user", "y"}},
	}
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"no criteria returns all", Criteria{}, []string{"t1", "t2", "t3", "t4", "t5"}},
		{"or within status", Criteria{Statuses: []models.TaskStatus{models.StatusTodo, models.StatusClosed}}, []string{"t1", "t3", "t4"}},
		{"and across facets", Criteria{Statuses: []models.TaskStatus{models.StatusTodo}, Types: []models.TaskType{models.TypeFeature}}, []string{"t3"}},
		{"priority", Criteria{Priorities: []models.Priority{models.PriorityHigh, models.PriorityCritical}}, []string{"t1", "t3", "t5"}},
		{"me alone", Criteria{Assignees: []string{"me"}}, []string{"t1", "t2", "t5"}},
		{"me with other id is a co-filter", Criteria{Assignees: []string{"me", "x"}}, []string{"t2"}},
		{"me with two other ids", Criteria{Assignees: []string{"me", "x", "y"}}, []string{"t2", "t5"}},
		{"explicit ids are or-ed", Criteria{Assignees: []string{"x", "y"}}, []string{"t2", "t3", "t5"}},
		{"me token is case insensitive", Criteria{Assignees: []string{"ME"}}, []string{"t1", "t2", "t5"}},
		{"nothing matches", Criteria{Types: []models.TaskType{models.TypeEnhancement}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(children(), tt.criteria, "me-user")))
		})
	}
}

func TestFilter_MeWithoutActingUserMatchesNothing(t *testing.T) {
	assert.Empty(t, Filter(children(), Criteria{Assignees: []string{"me"}}, ""))
}

func TestParseCriteria(t *testing.T) {
	c, err := ParseCriteria([]string{"TODO"}, []string{"bug"}, []string{"high"}, []string{" me ", ""})
	require.NoError(t, err)
	assert.Equal(t, []models.TaskStatus{models.StatusTodo}, c.Statuses)
	assert.Equal(t, []models.TaskType{models.TypeBug}, c.Types)
	assert.Equal(t, []models.Priority{models.PriorityHigh}, c.Priorities)
	assert.Equal(t, []string{"me"}, c.Assignees)

	c, err = ParseCriteria(nil, nil, nil, []string{"ME", "Me-User"})
	require.NoError(t, err)
	assert.Equal(t, []string{"me", "me-user"}, c.Assignees)
	_, err = ParseCriteria(nil, nil, nil, []string{"no spaces allowed"})
	assert.Error(t, err)

	_, err = ParseCriteria([]string{"open"}, nil, nil, nil)
	assert.Error(t, err)
	_, err = ParseCriteria(nil, []string{"epic"}, nil, nil)
	assert.Error(t, err)
	_, err = ParseCriteria(nil, nil, []string{"urgent"}, nil)
	assert.Error(t, err)
}

func numbered(n int) []models.Task {
	out := make([]models.Task, n)
	for i := range out {
		out[i] = models.Task{ID: fmt.Sprintf("t%02d", i+1), Status: models.StatusTodo}
	}
	return out
}

func TestPaginate(t *testing.T) {
	tasks := numbered(23)

	first := Paginate(tasks, 1, 10)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 23, first.TotalItems)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, "t01", first.Items[0].ID)

	last := Paginate(tasks, 3, 10)
	assert.Equal(t, []string{"t21", "t22", "t23"}, ids(last.Items))

	beyond := Paginate(tasks, 4, 10)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 4, beyond.Page)

	clamped := Paginate(tasks, 0, 0)
	assert.Equal(t, 1, clamped.Page)
	assert.Equal(t, DefaultPageSize, clamped.PageSize)

	empty := Paginate(nil, 1, 10)
	assert.Equal(t, 0, empty.TotalPages)
	assert.NotNil(t, empty.Items)
}

func TestPaginate_ExtremeValues(t *testing.T) {
	tasks := numbered(3)

	farPage := Paginate(tasks, math.MaxInt, 10)
	assert.Empty(t, farPage.Items)
	assert.Equal(t, 1, farPage.TotalPages)
	assert.Equal(t, math.MaxInt, farPage.Page)

	hugePageSize := Paginate(tasks, 1, math.MaxInt)
	assert.Equal(t, 1, hugePageSize.TotalPages)
	assert.Equal(t, []string{"t01", "t02", "t03"}, ids(hugePageSize.Items))

	both := Paginate(tasks, math.MaxInt, math.MaxInt)
	assert.Empty(t, both.Items)
	assert.Equal(t, 1, both.TotalPages)
}

func TestView_CriteriaChangeResetsPage(t *testing.T) {
	v := NewView(2)
	v.SetPage(3)
	assert.Equal(t, 3, v.CurrentPage())

	v.SetCriteria(Criteria{})
	assert.Equal(t, 3, v.CurrentPage(), "identical criteria keeps page")

	v.SetCriteria(Criteria{Statuses: []models.TaskStatus{models.StatusTodo}})
	assert.Equal(t, 1, v.CurrentPage())

	v.SetPage(2)
	v.SetCriteria(Criteria{Statuses: []models.TaskStatus{models.StatusTodo}})
	assert.Equal(t, 2, v.CurrentPage(), "same criteria keeps page")

	v.SetCriteria(Criteria{Statuses: []models.TaskStatus{models.StatusTodo}, Assignees: []string{"me"}})
	assert.Equal(t, 1, v.CurrentPage())
}

func TestView_Apply(t *testing.T) {
	v := NewView(2)
	v.SetCriteria(Criteria{Assignees: []string{"me"}})
	v.SetPage(2)

	page := v.Apply(children(), "me-user")
	assert.Equal(t, []string{"t5"}, ids(page.Items))
	assert.Equal(t, 3, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
}

func TestCriteriaEqualIgnoresOrder(t *testing.T) {
	a := Criteria{Assignees: []string{"me", "x"}}
	b := Criteria{Assignees: []string{"x", "me"}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Criteria{Assignees: []string{"x"}}))
}
