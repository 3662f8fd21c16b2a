package models

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListParams carries the common query-string options of every list endpoint.
type ListParams struct {
	Page    int
	Limit   int
	Sort    string
	Order   string
	Search  string
	Filters map[string]string
}

// ListResponse wraps one page of results.
type ListResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"totalPages"`
}

// ParseListParams reads page, limit, sort, order and search from the query
// string. Any other key listed in filterKeys becomes an equality filter.
func ParseListParams(r *http.Request, filterKeys ...string) (*ListParams, error) {
	q := r.URL.Query()
	p := &ListParams{
		Page:    1,
		Limit:   defaultPageSize,
		Sort:    q.Get("sort"),
		Order:   strings.ToLower(q.Get("order")),
		Search:  strings.TrimSpace(q.Get("search")),
		Filters: map[string]string{},
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", v)
		}
		p.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid limit %q", v)
		}
		p.Limit = n
	}
	for _, key := range filterKeys {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			p.Filters[key] = v
		}
	}
	return p, nil
}

// Validate checks paging bounds and the sort column against allowed.
func (p *ListParams) Validate(allowedSort ...string) error {
	if p.Page < 1 {
		return fmt.Errorf("page must be >= 1")
	}
	if p.Limit < 1 || p.Limit > maxPageSize {
		return fmt.Errorf("limit must be between 1 and %d", maxPageSize)
	}
	if p.Order != "" && p.Order != "asc" && p.Order != "desc" {
		return fmt.Errorf("order must be asc or desc")
	}
	if p.Sort != "" {
		ok := false
		for _, s := range allowedSort {
			if s == p.Sort {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("cannot sort by %q", p.Sort)
		}
	}
	return nil
}

// Apply adds filters, ordering and paging to q. column maps a filter key to
// its column name; searchColumns are ILIKE-matched against Search.
func (p *ListParams) Apply(q *gorm.DB, column map[string]string, searchColumns ...string) *gorm.DB {
	for key, value := range p.Filters {
		col, ok := column[key]
		if !ok {
			continue
		}
		q = q.Where(col+" = ?", value)
	}
	if p.Search != "" && len(searchColumns) > 0 {
		like := "%" + p.Search + "%"
		clauses := make([]string, len(searchColumns))
		args := make([]interface{}, len(searchColumns))
		for i, c := range searchColumns {
			clauses[i] = c + " ILIKE ?"
			args[i] = like
		}
		q = q.Where(strings.Join(clauses, " OR "), args...)
	}
	return q
}

// Paginate applies ordering, offset and limit.
func (p *ListParams) Paginate(q *gorm.DB, defaultSort string) *gorm.DB {
	sort := p.Sort
	if sort == "" {
		sort = defaultSort
	}
	order := p.Order
	if order == "" {
		order = "desc"
	}
	return q.Order(sort + " " + order).Offset((p.Page - 1) * p.Limit).Limit(p.Limit)
}

// NewListResponse fills in the page counters.
func NewListResponse(data interface{}, p *ListParams, total int64) ListResponse {
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	return ListResponse{Data: data, Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}
