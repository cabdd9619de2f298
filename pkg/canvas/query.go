package canvas

import (
	"net/url"
	"strconv"
)

// QueryParams represents the list options understood by the Canvas endpoints
// this client talks to. Array options use Canvas' "name[]" convention.
type QueryParams struct {
	PerPage         int
	Include         []string
	EnrollmentTypes []string
	EnrollmentState string
	States          []string
	SearchTerm      string
	OrderBy         string
	Filters         map[string][]string
}

// NewQueryParams creates empty query parameters.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string][]string),
	}
}

// WithPerPage sets the page size requested from the server.
func (q *QueryParams) WithPerPage(perPage int) *QueryParams {
	q.PerPage = perPage

	return q
}

// WithInclude appends include[] values.
func (q *QueryParams) WithInclude(include ...string) *QueryParams {
	q.Include = append(q.Include, include...)

	return q
}

// WithEnrollmentType appends enrollment_type[] values.
func (q *QueryParams) WithEnrollmentType(types ...string) *QueryParams {
	q.EnrollmentTypes = append(q.EnrollmentTypes, types...)

	return q
}

// WithEnrollmentState sets enrollment_state.
func (q *QueryParams) WithEnrollmentState(state string) *QueryParams {
	q.EnrollmentState = state

	return q
}

// WithState appends state[] values.
func (q *QueryParams) WithState(states ...string) *QueryParams {
	q.States = append(q.States, states...)

	return q
}

// WithSearchTerm sets search_term.
func (q *QueryParams) WithSearchTerm(term string) *QueryParams {
	q.SearchTerm = term

	return q
}

// WithOrderBy sets order_by.
func (q *QueryParams) WithOrderBy(orderBy string) *QueryParams {
	q.OrderBy = orderBy

	return q
}

// WithFilter adds a raw filter, sent as-is.
func (q *QueryParams) WithFilter(key string, values ...string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string][]string)
	}

	q.Filters[key] = append(q.Filters[key], values...)

	return q
}

// Clone returns a deep copy so callers can add defaults without touching the original.
func (q *QueryParams) Clone() *QueryParams {
	if q == nil {
		return NewQueryParams()
	}

	clone := &QueryParams{
		PerPage:         q.PerPage,
		Include:         append([]string(nil), q.Include...),
		EnrollmentTypes: append([]string(nil), q.EnrollmentTypes...),
		EnrollmentState: q.EnrollmentState,
		States:          append([]string(nil), q.States...),
		SearchTerm:      q.SearchTerm,
		OrderBy:         q.OrderBy,
		Filters:         make(map[string][]string, len(q.Filters)),
	}

	for key, values := range q.Filters {
		clone.Filters[key] = append([]string(nil), values...)
	}

	return clone
}

// ToValues converts the parameters to url.Values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q == nil {
		return values
	}

	if q.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(q.PerPage))
	}

	for _, include := range q.Include {
		values.Add("include[]", include)
	}

	for _, enrollmentType := range q.EnrollmentTypes {
		values.Add("enrollment_type[]", enrollmentType)
	}

	if q.EnrollmentState != "" {
		values.Set("enrollment_state", q.EnrollmentState)
	}

	for _, state := range q.States {
		values.Add("state[]", state)
	}

	if q.SearchTerm != "" {
		values.Set("search_term", q.SearchTerm)
	}

	if q.OrderBy != "" {
		values.Set("order_by", q.OrderBy)
	}

	for key, filterValues := range q.Filters {
		for _, value := range filterValues {
			values.Add(key, value)
		}
	}

	return values
}
