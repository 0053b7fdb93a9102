package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/lead-intake/internal/entity"
)

var base = time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)

func lead(id, first, last string, status entity.Status, offset time.Duration) entity.Lead {
	return entity.Lead{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Status:    status,
		Country:   "Mexico",
		CreatedAt: base.Add(offset),
	}
}

func firstNames(leads []entity.Lead) []string {
	out := make([]string, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.FirstName)
	}
	return out
}

func ids(leads []entity.Lead) []string {
	out := make([]string, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.ID)
	}
	return out
}

func sample() []entity.Lead {
	return []entity.Lead{
		lead("1", "Zed", "Quinn", entity.StatusPending, 2*time.Hour),
		lead("2", "Amy", "Lopez", entity.StatusReachedOut, 0),
		lead("3", "Mona", "Zamir", entity.StatusPending, time.Hour),
	}
}

func TestDeriveSortByFirstName(t *testing.T) {
	asc := Derive(sample(), Params{SortBy: SortByFirstName, SortOrder: Asc})
	assert.Equal(t, []string{"Amy", "Mona", "Zed"}, firstNames(asc))

	desc := Derive(sample(), Params{SortBy: SortByFirstName, SortOrder: Desc})
	assert.Equal(t, []string{"Zed", "Mona", "Amy"}, firstNames(desc))
}

func TestDeriveSortByCreatedAtIsChronological(t *testing.T) {
	got := Derive(sample(), Params{SortBy: SortByCreatedAt, SortOrder: Asc})
	assert.Equal(t, []string{"2", "3", "1"}, ids(got))

	got = Derive(sample(), Params{SortBy: SortByCreatedAt, SortOrder: Desc})
	assert.Equal(t, []string{"1", "3", "2"}, ids(got))
}

func TestDeriveUnknownKeyFallsBackToCreatedAt(t *testing.T) {
	got := Derive(sample(), Params{SortBy: "favouriteColour", SortOrder: Asc})
	assert.Equal(t, []string{"2", "3", "1"}, ids(got))
}

func TestDeriveIsCaseSensitive(t *testing.T) {
	leads := []entity.Lead{
		lead("1", "bob", "", entity.StatusPending, 0),
		lead("2", "Bob", "", entity.StatusPending, 0),
		lead("3", "alice", "", entity.StatusPending, 0),
	}
	got := Derive(leads, Params{SortBy: SortByFirstName, SortOrder: Asc})
	assert.Equal(t, []string{"Bob", "alice", "bob"}, firstNames(got))
}

func TestDeriveStableForEqualKeys(t *testing.T) {
	leads := []entity.Lead{
		lead("a", "X", "", entity.StatusPending, 0),
		lead("b", "X", "", entity.StatusReachedOut, 0),
		lead("c", "A", "", entity.StatusPending, 0),
		lead("d", "X", "", entity.StatusPending, 0),
	}

	asc := Derive(leads, Params{SortBy: SortByFirstName, SortOrder: Asc})
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(asc))

	desc := Derive(leads, Params{SortBy: SortByFirstName, SortOrder: Desc})
	assert.Equal(t, []string{"a", "b", "d", "c"}, ids(desc))

	byCountry := Derive(leads, Params{SortBy: SortByCountry, SortOrder: Desc})
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(byCountry))
}

func TestDeriveMissingValuesSortFirst(t *testing.T) {
	leads := []entity.Lead{
		{ID: "1", Country: "Brazil", CreatedAt: base},
		{ID: "2"},
		{ID: "3", Country: "", CreatedAt: base.Add(time.Hour)},
	}

	got := Derive(leads, Params{SortBy: SortByCountry, SortOrder: Asc})
	assert.Equal(t, []string{"2", "3", "1"}, ids(got))

	got = Derive(leads, Params{SortBy: SortByCreatedAt, SortOrder: Asc})
	assert.Equal(t, []string{"2", "1", "3"}, ids(got))
}

func TestDeriveSortByVisaCategories(t *testing.T) {
	leads := []entity.Lead{
		{ID: "1", VisaCategories: []string{"O-1"}},
		{ID: "2", VisaCategories: []string{"EB-1A", "O-1"}},
		{ID: "3"},
	}
	got := Derive(leads, Params{SortBy: SortByVisaCategories, SortOrder: Asc})
	assert.Equal(t, []string{"3", "2", "1"}, ids(got))
}

func TestDeriveStatusFilter(t *testing.T) {
	leads := append(sample(), lead("4", "Li", "Zijin", entity.StatusPending, 3*time.Hour))

	got := Derive(leads, Params{StatusFilter: entity.StatusPending, SortBy: SortByFirstName, SortOrder: Asc})
	assert.Equal(t, []string{"Li", "Mona", "Zed"}, firstNames(got))
	for _, l := range got {
		assert.Equal(t, entity.StatusPending, l.Status)
	}

	got = Derive(leads, Params{StatusFilter: entity.StatusReachedOut, SortBy: SortByFirstName, SortOrder: Asc})
	assert.Equal(t, []string{"Amy"}, firstNames(got))
}

func TestDeriveSearchMatchesFirstOrLastNameCaseInsensitive(t *testing.T) {
	p := Params{SortBy: SortByFirstName, SortOrder: Asc}

	p.SearchQuery = "ZA"
	assert.Equal(t, []string{"Mona"}, firstNames(Derive(sample(), p)))

	p.SearchQuery = "amy"
	assert.Equal(t, []string{"Amy"}, firstNames(Derive(sample(), p)))

	p.SearchQuery = "o"
	assert.Equal(t, []string{"Amy", "Mona"}, firstNames(Derive(sample(), p)))

	p.SearchQuery = "nobody"
	assert.Empty(t, Derive(sample(), p))
}

func TestDeriveSearchAndStatusCompose(t *testing.T) {
	p := Params{SearchQuery: "o", StatusFilter: entity.StatusPending, SortBy: SortByFirstName, SortOrder: Desc}
	assert.Equal(t, []string{"Mona"}, firstNames(Derive(sample(), p)))
}

func TestDeriveEmptyInput(t *testing.T) {
	got := Derive(nil, DefaultParams())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	in := sample()
	orig := ids(in)

	_ = Derive(in, Params{SortBy: SortByFirstName, SortOrder: Asc})
	assert.Equal(t, orig, ids(in))
}

func TestToggleSort(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, SortByFirstName, p.SortBy)
	assert.Equal(t, Asc, p.SortOrder)

	p = p.ToggleSort(SortByFirstName)
	assert.Equal(t, Desc, p.SortOrder)

	p = p.ToggleSort(SortByFirstName)
	assert.Equal(t, Asc, p.SortOrder)

	p = p.ToggleSort(SortByCountry)
	assert.Equal(t, SortByCountry, p.SortBy)
	assert.Equal(t, Asc, p.SortOrder)

	p.SortOrder = Desc
	p = p.ToggleSort(SortByCreatedAt)
	assert.Equal(t, SortByCreatedAt, p.SortBy)
	assert.Equal(t, Asc, p.SortOrder)
}

func TestParseSortKeyAndOrder(t *testing.T) {
	for _, s := range []string{"firstName", "lastName", "createdAt", "status", "country", "visaCategories"} {
		key, ok := ParseSortKey(s)
		assert.True(t, ok, s)
		assert.Equal(t, SortKey(s), key)
	}
	_, ok := ParseSortKey("shoeSize")
	assert.False(t, ok)

	o, ok := ParseOrder("DESC")
	assert.True(t, ok)
	assert.Equal(t, Desc, o)
	_, ok = ParseOrder("sideways")
	assert.False(t, ok)
}
