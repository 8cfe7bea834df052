package pagination

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type Page[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

type Links struct {
	First string `json:"first,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Last  string `json:"last,omitempty"`
}

// Validate clamps page to at least 1 and limit to 1..MaxLimit, defaulting a zero limit.
func Validate(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	limit = max(1, min(MaxLimit, limit))
	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

func NewMeta(total int, p Params) Meta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}

// Paginate slices items for p. Params are expected to be validated.
func Paginate[T any](items []T, p Params) Page[T] {
	start := min(p.Offset(), len(items))
	end := min(start+p.Limit, len(items))

	data := make([]T, end-start)
	copy(data, items[start:end])

	return Page[T]{Data: data, Pagination: NewMeta(len(items), p)}
}

// NewLinks builds first/prev/next/last links for baseURL, carrying query.
func NewLinks(baseURL string, m Meta, query url.Values) Links {
	q := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}

	link := func(page int) string {
		q.Set("page", strconv.Itoa(page))
		return baseURL + "?" + q.Encode()
	}

	var l Links
	if m.Page > 1 {
		l.First = link(1)
	}
	if m.HasPrev {
		l.Prev = link(m.Page - 1)
	}
	if m.HasNext {
		l.Next = link(m.Page + 1)
	}
	if m.Page < m.TotalPages {
		l.Last = link(m.TotalPages)
	}
	return l
}
