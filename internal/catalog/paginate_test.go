package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate_LastPartialPage(t *testing.T) {
	ps := manyProducts(53)

	p := Paginate(ps, 3, 24)

	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 53, p.Total)
	require.Len(t, p.Items, 5)
	assert.Equal(t, int64(49), p.Items[0].ID)
}

func TestPaginate_PagesCoverAllItems(t *testing.T) {
	for _, n := range []int{0, 1, 23, 24, 25, 48, 96, 97, 200} {
		for _, size := range PageSizes {
			ps := manyProducts(n)
			first := Paginate(ps, 1, size)

			want := (n + size - 1) / size
			if want == 0 {
				want = 1
			}
			assert.Equal(t, want, first.TotalPages, "n=%d size=%d", n, size)

			var seen []int64
			for page := 1; page <= first.TotalPages; page++ {
				seen = append(seen, productIDs(Paginate(ps, page, size).Items)...)
			}
			assert.Len(t, seen, n, "n=%d size=%d", n, size)
			assert.Equal(t, productIDs(ps), append([]int64{}, seen...), "n=%d size=%d", n, size)
		}
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	ps := manyProducts(10)

	assert.Empty(t, Paginate(ps, 2, 24).Items)
	assert.Empty(t, Paginate(ps, 0, 24).Items)
	assert.Empty(t, Paginate(ps, -3, 24).Items)
	assert.NotNil(t, Paginate(nil, 1, 24).Items)
}

func TestPaginate_HugePageIsEmpty(t *testing.T) {
	ps := manyProducts(53)

	p := Paginate(ps, math.MaxInt/24+2, 24)
	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.TotalPages)

	assert.Empty(t, Paginate(ps, math.MaxInt, 96).Items)
	assert.Len(t, Paginate(ps, 1, math.MaxInt).Items, 53)
	assert.Equal(t, 1, TotalPages(53, math.MaxInt))
}

func TestPaginate_ItemsAreACopy(t *testing.T) {
	ps := manyProducts(3)
	p := Paginate(ps, 1, 24)
	p.Items[0].Name = "changed"
	assert.Equal(t, "Item 001", ps[0].Name)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 24))
	assert.Equal(t, 1, TotalPages(24, 24))
	assert.Equal(t, 2, TotalPages(25, 24))
	assert.Equal(t, 3, TotalPages(53, 24))
	assert.Equal(t, 1, TotalPages(10, 0))
}

func TestNormalizePageSize(t *testing.T) {
	assert.Equal(t, 24, NormalizePageSize(24))
	assert.Equal(t, 48, NormalizePageSize(48))
	assert.Equal(t, 96, NormalizePageSize(96))
	assert.Equal(t, 24, NormalizePageSize(50))
	assert.Equal(t, 24, NormalizePageSize(0))
}

func TestPageState(t *testing.T) {
	s := NewPageState()
	assert.Equal(t, PageState{PageSize: 24, Page: 1}, s)

	s.Page = 3
	assert.Equal(t, 3, s.Clamp(60).Page)
	assert.Equal(t, 1, s.Clamp(30).Page, "stale page resets to 1, not to the last page")
	assert.Equal(t, 1, PageState{PageSize: 24, Page: 0}.Clamp(30).Page)
	assert.Equal(t, 24, PageState{PageSize: 7, Page: 1}.Clamp(30).PageSize)

	s = s.WithPageSize(48)
	assert.Equal(t, PageState{PageSize: 48, Page: 1}, s)

	s.Page = 2
	assert.Equal(t, 1, s.Reset().Page)
}
