package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// paginate 在内存中按 window 切片，模拟 OFFSET/LIMIT
func paginate(items []int, page, size int) []int {
	offset, ok := window(page, size, int64(len(items)))
	if !ok {
		return []int{}
	}
	end := offset + size
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func sequence(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestWindowScenario(t *testing.T) {
	videos := sequence(25)

	assert.Equal(t, videos[0:10], paginate(videos, 1, 10))
	assert.Equal(t, videos[20:25], paginate(videos, 3, 10))
	assert.Empty(t, paginate(videos, 4, 10))

	for page := 1; page <= 4; page++ {
		p := NewPage(paginate(videos, page, 10), page, 10, 25)
		assert.Equal(t, int64(25), p.TotalCount)
		assert.Equal(t, 3, p.TotalPages)
	}
}

func TestPagesPartitionTheSet(t *testing.T) {
	for _, total := range []int{0, 1, 9, 10, 11, 25, 101} {
		for _, size := range []int{1, 3, 10, 50} {
			items := sequence(total)
			var seen []int
			for page := 1; ; page++ {
				chunk := paginate(items, page, size)
				if len(chunk) == 0 {
					break
				}
				seen = append(seen, chunk...)
			}
			if total == 0 {
				assert.Empty(t, seen)
				continue
			}
			assert.Equal(t, items, seen, "total=%d size=%d", total, size)
		}
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](nil, 1, 10, 0)
	assert.NotNil(t, p.Items)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)

	p = NewPage([]int{1}, 2, 10, 11)
	assert.Equal(t, 2, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
}

func TestResolveSort(t *testing.T) {
	d := &Descriptor{
		Sorts:       map[string]string{"createdAt": "created_at", "duration": "duration"},
		DefaultSort: Sort{Field: "createdAt", Desc: true},
	}

	order, err := d.resolveSort(Sort{})
	assert.NoError(t, err)
	assert.Equal(t, "r.created_at ASC, r.id ASC", order)

	order, err = d.resolveSort(Sort{Field: "duration", Desc: true})
	assert.NoError(t, err)
	assert.Equal(t, "r.duration DESC, r.id DESC", order)

	_, err = d.resolveSort(Sort{Field: "title"})
	assert.Error(t, err)
}
