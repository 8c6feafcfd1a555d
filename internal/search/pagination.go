package search

import (
	"net/url"
	"strconv"

	"inventario/internal/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageParams es el modo página: page 1-based + limit por página.
type PageParams struct {
	Page  int
	Limit int
}

// OffsetParams es el modo offset: skip absoluto + limit.
type OffsetParams struct {
	Skip  int
	Limit int
}

// PageMeta acompaña las respuestas en modo página.
type PageMeta struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

// OffsetMeta acompaña las respuestas en modo offset.
type OffsetMeta struct {
	HasMore    bool `json:"hasMore"`
	TotalItems int  `json:"totalItems"`
}

// ParsePageParams lee page/limit. Entrada no numérica o fuera de rango se
// rechaza con error de validación en vez de coercionarse en silencio.
func ParsePageParams(params url.Values) (PageParams, error) {
	page, err := parseParam(params, "page", 1, 1)
	if err != nil {
		return PageParams{}, err
	}
	limit, err := parseLimit(params)
	if err != nil {
		return PageParams{}, err
	}
	return PageParams{Page: page, Limit: limit}, nil
}

// ParseOffsetParams lee skip/limit con la misma política de parseo estricto.
func ParseOffsetParams(params url.Values) (OffsetParams, error) {
	skip, err := parseParam(params, "skip", 0, 0)
	if err != nil {
		return OffsetParams{}, err
	}
	limit, err := parseLimit(params)
	if err != nil {
		return OffsetParams{}, err
	}
	return OffsetParams{Skip: skip, Limit: limit}, nil
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NewPageMeta calcula totalPages = ceil(totalItems / limit).
func NewPageMeta(p PageParams, totalItems int) PageMeta {
	pages := 0
	if totalItems > 0 {
		pages = (totalItems + p.Limit - 1) / p.Limit
	}
	return PageMeta{
		CurrentPage: p.Page,
		TotalPages:  pages,
		TotalItems:  totalItems,
	}
}

// NewOffsetMeta: hasMore ⇔ skip + devueltos < totalItems.
func NewOffsetMeta(p OffsetParams, returned, totalItems int) OffsetMeta {
	return OffsetMeta{
		HasMore:    p.Skip+returned < totalItems,
		TotalItems: totalItems,
	}
}

func parseLimit(params url.Values) (int, error) {
	limit, err := parseParam(params, "limit", DefaultLimit, 1)
	if err != nil {
		return 0, err
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit, nil
}

func parseParam(params url.Values, key string, def, min int) (int, error) {
	raw := params.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		return 0, domain.ValidationError{Field: key, Msg: "debe ser un entero >= " + strconv.Itoa(min), Err: err}
	}
	return n, nil
}
