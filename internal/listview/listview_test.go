package listview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id     int
	fields []string
}

func (r row) SearchValues() []string { return r.fields }

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{id: i + 1, fields: []string{fmt.Sprintf("Nom%d", i+1)}}
	}
	return out
}

func TestFilterScenario(t *testing.T) {
	items := []row{
		{id: 1, fields: []string{"Jean"}},
		{id: 2, fields: []string{"Marie"}},
	}

	filtered := Filter(items, "jean")
	require.Len(t, filtered, 1)
	assert.Equal(t, 1, filtered[0].id)

	s := NewState()
	require.True(t, s.SetSize(5))
	p := Paginate(filtered, s)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, []row{items[0]}, p.Items)
}

func TestFilterIsCaseInsensitiveSubset(t *testing.T) {
	items := []row{
		{id: 1, fields: []string{"Médecin", "Dupont"}},
		{id: 2, fields: []string{"Infirmier", "Lefèvre"}},
		{id: 3, fields: []string{"Directeur", "DUPONTEL"}},
		{id: 4, fields: []string{"En rémission", ""}},
	}

	for _, term := range []string{"dupont", "MÉDECIN", "fèv", "rémission", "x", "", "E"} {
		filtered := Filter(items, term)

		kept := map[int]bool{}
		for _, f := range filtered {
			kept[f.id] = true
			assert.Contains(t, items, f, "term %q", term)
		}
		for _, it := range items {
			if kept[it.id] || term == "" {
				continue
			}
			for _, v := range it.fields {
				assert.NotContains(t, strings.ToLower(v), strings.ToLower(term), "term %q excluded item %d", term, it.id)
			}
		}
	}

	assert.Len(t, Filter(items, ""), len(items))
	assert.Len(t, Filter(items, "dupont"), 2)
}

func TestBlankTermIsMatched(t *testing.T) {
	items := []row{
		{id: 1, fields: []string{"Jean Dupont"}},
		{id: 2, fields: []string{"Marie"}},
	}

	filtered := Filter(items, " ")
	require.Len(t, filtered, 1)
	assert.Equal(t, 1, filtered[0].id)
	assert.Empty(t, Filter(items, "   "))
}

func TestPagesCoverFilteredCount(t *testing.T) {
	for _, size := range PageSizes {
		for n := 0; n <= 47; n++ {
			items := rows(n)
			s := NewState()
			require.True(t, s.SetSize(size))

			first := Paginate(items, s)
			sum := 0
			for page := 1; page <= first.TotalPages; page++ {
				s.SetPage(page)
				p := Paginate(items, s)
				assert.Equal(t, page, p.Page)
				sum += len(p.Items)
			}
			assert.Equal(t, n, sum, "size %d, n %d", size, n)
			assert.Equal(t, (n+size-1)/size, first.TotalPages)
		}
	}
}

func TestSetSizeResetsPage(t *testing.T) {
	s := NewState()
	s.SetPage(4)

	assert.True(t, s.SetSize(20))
	assert.Equal(t, 1, s.Page)

	s.SetPage(3)
	assert.False(t, s.SetSize(7))
	assert.Equal(t, 3, s.Page)
	assert.Equal(t, 20, s.Size)
}

func TestSetSearchResetsPage(t *testing.T) {
	s := NewState()
	s.SetPage(3)
	s.SetSearch("jean")
	assert.Equal(t, 1, s.Page)

	s.SetPage(2)
	s.SetSearch("jean")
	assert.Equal(t, 2, s.Page)
}

func TestPaginateClampsAndBounds(t *testing.T) {
	items := rows(23)
	s := NewState()
	s.SetPage(9)

	p := Paginate(items, s)
	assert.Equal(t, 3, p.Page)
	assert.Len(t, p.Items, 3)
	assert.True(t, p.HasPrev)
	assert.False(t, p.HasNext)

	s.SetPage(1)
	p = Paginate(items, s)
	assert.False(t, p.HasPrev)
	assert.True(t, p.HasNext)

	empty := Paginate([]row{}, NewState())
	assert.Equal(t, 1, empty.Page)
	assert.Zero(t, empty.TotalPages)
	assert.Empty(t, empty.Items)
	assert.False(t, empty.HasNext)
	assert.Nil(t, empty.Links)
}

func TestLinks(t *testing.T) {
	render := func(links []Link) string {
		parts := make([]string, 0, len(links))
		for _, l := range links {
			switch {
			case l.Ellipsis:
				parts = append(parts, "...")
			case l.Current:
				parts = append(parts, fmt.Sprintf("[%d]", l.Number))
			default:
				parts = append(parts, fmt.Sprint(l.Number))
			}
		}
		return strings.Join(parts, " ")
	}

	assert.Equal(t, "[1]", render(Links(1, 1)))
	assert.Equal(t, "[1] 2 ... 10", render(Links(1, 10)))
	assert.Equal(t, "1 ... 4 [5] 6 ... 10", render(Links(5, 10)))
	assert.Equal(t, "1 2 [3] 4 ... 10", render(Links(3, 10)))
	assert.Equal(t, "1 ... 9 [10]", render(Links(10, 10)))
	assert.Equal(t, "1 [2] 3", render(Links(2, 3)))
}
