// Package query derives the visible lead list from a fetched list and the
// dashboard's search, status filter and sort settings.
package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/xavierca1/lead-intake/internal/entity"
)

type SortKey string

const (
	SortByID             SortKey = "id"
	SortByFirstName      SortKey = "firstName"
	SortByLastName       SortKey = "lastName"
	SortByEmail          SortKey = "email"
	SortByLinkedInURL    SortKey = "linkedinUrl"
	SortByVisaCategories SortKey = "visaCategories"
	SortByResumeFileName SortKey = "resumeFileName"
	SortByMessage        SortKey = "message"
	SortByCountry        SortKey = "country"
	SortByStatus         SortKey = "status"
	SortByCreatedAt      SortKey = "createdAt"
)

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

type Params struct {
	SearchQuery  string
	StatusFilter entity.Status // empty means every status
	SortBy       SortKey
	SortOrder    Order
}

// DefaultParams is the state the dashboard opens with.
func DefaultParams() Params {
	return Params{SortBy: SortByFirstName, SortOrder: Asc}
}

// ToggleSort applies a column-header click: the same column while ascending
// flips to descending, anything else sorts ascending by the new column.
func (p Params) ToggleSort(key SortKey) Params {
	if p.SortBy == key && p.SortOrder == Asc {
		p.SortOrder = Desc
	} else {
		p.SortOrder = Asc
	}
	p.SortBy = key
	return p
}

var stringKeys = map[SortKey]func(entity.Lead) string{
	SortByID:             func(l entity.Lead) string { return l.ID },
	SortByFirstName:      func(l entity.Lead) string { return l.FirstName },
	SortByLastName:       func(l entity.Lead) string { return l.LastName },
	SortByEmail:          func(l entity.Lead) string { return l.Email },
	SortByLinkedInURL:    func(l entity.Lead) string { return l.LinkedInURL },
	SortByVisaCategories: func(l entity.Lead) string { return strings.Join(l.VisaCategories, ",") },
	SortByResumeFileName: func(l entity.Lead) string { return l.ResumeFileName },
	SortByMessage:        func(l entity.Lead) string { return l.Message },
	SortByCountry:        func(l entity.Lead) string { return l.Country },
	SortByStatus:         func(l entity.Lead) string { return string(l.Status) },
}

func ParseSortKey(s string) (SortKey, bool) {
	key := SortKey(s)
	if key == SortByCreatedAt {
		return key, true
	}
	_, ok := stringKeys[key]
	return key, ok
}

func ParseOrder(s string) (Order, bool) {
	switch Order(strings.ToLower(s)) {
	case Asc:
		return Asc, true
	case Desc:
		return Desc, true
	}
	return "", false
}

// Derive sorts then filters leads. The input slice is left untouched and the
// result is always a new slice.
//
// Strings compare byte-wise and case-sensitively, createdAt compares
// chronologically. Empty strings and zero times sort first. An unknown sort
// key falls back to createdAt. Equal keys keep their input order in both
// directions.
func Derive(leads []entity.Lead, p Params) []entity.Lead {
	sorted := slices.Clone(leads)
	slices.SortStableFunc(sorted, comparator(p.SortBy, p.SortOrder))

	search := strings.ToLower(p.SearchQuery)
	out := make([]entity.Lead, 0, len(sorted))
	for _, l := range sorted {
		if matches(l, search, p.StatusFilter) {
			out = append(out, l)
		}
	}
	return out
}

func comparator(key SortKey, order Order) func(a, b entity.Lead) int {
	var cmpFn func(a, b entity.Lead) int
	if get, ok := stringKeys[key]; ok {
		cmpFn = func(a, b entity.Lead) int { return cmp.Compare(get(a), get(b)) }
	} else {
		cmpFn = func(a, b entity.Lead) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}

	if order == Desc {
		return func(a, b entity.Lead) int { return -cmpFn(a, b) }
	}
	return cmpFn
}

func matches(l entity.Lead, search string, status entity.Status) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(l.FirstName), search) &&
		!strings.Contains(strings.ToLower(l.LastName), search) {
		return false
	}
	return status == "" || l.Status == status
}
