package pagination_test

import (
	"math"
	"testing"

	"github.com/stattrackr/stattrackr/internal/pagination"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	require.Equal(t, []int{1, 2, 3}, pagination.Paginate(items, 1, 3))
	require.Equal(t, []int{7}, pagination.Paginate(items, 3, 3))
	require.Empty(t, pagination.Paginate(items, 4, 3))
	require.Equal(t, []int{1, 2, 3}, pagination.Paginate(items, 0, 3))

	page := pagination.Paginate(items, 1, 3)
	page[0] = 100
	require.Equal(t, 1, items[0])
}

func TestPaginateReconstructs(t *testing.T) {
	for size := 1; size <= 12; size++ {
		for total := 0; total <= 25; total++ {
			items := make([]int, total)
			for i := range items {
				items[i] = i
			}

			var joined []int

			for page := 1; page <= pagination.TotalPages(total, size); page++ {
				chunk := pagination.Paginate(items, page, size)
				require.LessOrEqual(t, len(chunk), size)
				joined = append(joined, chunk...)
			}

			if total == 0 {
				require.Empty(t, joined)
			} else {
				require.Equal(t, items, joined)
			}
		}
	}
}

func TestHugePagesClamp(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	require.Empty(t, pagination.Paginate(items, math.MaxInt, 2))
	require.Empty(t, pagination.Paginate(items, math.MaxInt/2+1, 2))
	require.Equal(t, items, pagination.Paginate(items, 1, math.MaxInt))
	require.Empty(t, pagination.Paginate(items, 2, math.MaxInt))
	require.Equal(t, 1, pagination.TotalPages(5, math.MaxInt))

	require.Equal(t, 5, pagination.StartIndex(math.MaxInt, 2, 5))
	require.Equal(t, 5, pagination.EndIndex(math.MaxInt, 2, 5))
	require.Equal(t, 1, pagination.StartIndex(1, math.MaxInt, 5))
	require.Equal(t, 5, pagination.EndIndex(1, math.MaxInt, 5))
	require.Equal(t, 5, pagination.EndIndex(2, math.MaxInt, 5))
	require.False(t, pagination.IsLastPage(math.MaxInt, 5, 2))
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, pagination.TotalPages(0, 10))
	require.Equal(t, 1, pagination.TotalPages(10, 10))
	require.Equal(t, 2, pagination.TotalPages(11, 10))
	require.Equal(t, 3, pagination.TotalPages(21, 0))
	require.True(t, pagination.IsLastPage(2, 11, 10))
	require.False(t, pagination.IsLastPage(1, 11, 10))
	require.True(t, pagination.IsFirstPage(1))
}

func TestIndexes(t *testing.T) {
	require.Equal(t, 11, pagination.StartIndex(2, 10, 25))
	require.Equal(t, 20, pagination.EndIndex(2, 10, 25))
	require.Equal(t, 21, pagination.StartIndex(3, 10, 25))
	require.Equal(t, 25, pagination.EndIndex(3, 10, 25))
	require.Equal(t, 0, pagination.StartIndex(1, 10, 0))
	require.Equal(t, 0, pagination.EndIndex(1, 10, 0))
	require.Equal(t, 25, pagination.StartIndex(9, 10, 25))
}

func TestPager(t *testing.T) {
	pager := pagination.NewPager(0)
	require.Equal(t, pagination.DefaultPageSize, pager.PageSize())
	require.Equal(t, 1, pager.Page())

	require.True(t, pager.Next(25))
	require.True(t, pager.Next(25))
	require.False(t, pager.Next(25))
	require.Equal(t, 3, pager.Page())

	start, end := pager.Summary(25)
	require.Equal(t, 21, start)
	require.Equal(t, 25, end)

	pager.SetPageSize(5)
	require.Equal(t, 1, pager.Page())
	require.Equal(t, 5, pager.PageSize())

	require.False(t, pager.Prev())
	pager.SetPage(-4)
	require.Equal(t, 1, pager.Page())

	pager.SetPage(5)
	pager.Clamp(12)
	require.Equal(t, 3, pager.Page())
	pager.Clamp(0)
	require.Equal(t, 1, pager.Page())
}
