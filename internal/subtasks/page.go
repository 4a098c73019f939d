package subtasks

import "tasklane/internal/models"

const DefaultPageSize = 10

// Page is one slice of a filtered result.
type Page struct {
	Items      []models.Task `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalItems int           `json:"total_items"`
	TotalPages int           `json:"total_pages"`
}

// Paginate returns page number page (1-based) of tasks. Pages below 1 are
// treated as 1; pages past the end return no items.
func Paginate(tasks []models.Task, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(tasks)
	result := Page{
		Items:      []models.Task{},
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: total / pageSize,
	}
	if total%pageSize != 0 {
		result.TotalPages++
	}
	if page > result.TotalPages {
		return result
	}
	start := (page - 1) * pageSize
	end := start + min(pageSize, total-start)
	result.Items = tasks[start:end]
	return result
}

// View tracks the filter and page a user is looking at over one parent's children.
// Changing the criteria resets the page to 1.
type View struct {
	criteria Criteria
	page     int
	pageSize int
}

// NewView returns a View on page 1 with no filters.
func NewView(pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{page: 1, pageSize: pageSize}
}

// Criteria returns the active criteria.
func (v *View) Criteria() Criteria { return v.criteria }

// CurrentPage returns the 1-based page number.
func (v *View) CurrentPage() int { return v.page }

// SetCriteria replaces the filter; the page resets to 1 when it differs from the current one.
func (v *View) SetCriteria(criteria Criteria) {
	if v.criteria.Equal(criteria) {
		return
	}
	v.criteria = criteria
	v.page = 1
}

// SetPage moves to page; values below 1 become 1.
func (v *View) SetPage(page int) {
	v.page = max(page, 1)
}

// Apply filters children for actingUser and returns the current page.
func (v *View) Apply(children []models.Task, actingUser string) Page {
	return Paginate(Filter(children, v.criteria, actingUser), v.page, v.pageSize)
}
