// Package pagination implements 1-based page/limit pagination.
package pagination

// Request carries the page coordinates of a list query.
type Request struct {
	Page  int `query:"page" json:"page"`
	Limit int `query:"limit" json:"limit"`
}

// Normalize applies defaults and constraints.
// Page falls back to 1 and Limit to the default size when not positive.
func (r *Request) Normalize(opts ...Option) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Limit <= 0 {
		r.Limit = o.DefaultLimit
	}
	if o.MaxLimit > 0 && r.Limit > o.MaxLimit {
		r.Limit = o.MaxLimit
	}
}

// Offset returns the number of rows to skip.
func (r Request) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Response is the pagination metadata rendered next to a page of items.
type Response struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewResponse builds the metadata for a page; Pages is ceil(total / limit).
func (r Request) NewResponse(total int64) Response {
	var pages int64
	if r.Limit > 0 {
		limit := int64(r.Limit)
		pages = total / limit
		if total%limit > 0 {
			pages++
		}
	}

	return Response{
		Page:  r.Page,
		Limit: r.Limit,
		Total: total,
		Pages: pages,
	}
}
