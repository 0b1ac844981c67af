package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := ParsePage(httptest.NewRequest("GET", "/x", nil), 20, 100)
		require.NoError(t, err)
		assert.Equal(t, Page{Page: 1, Size: 20}, p)
	})

	t.Run("size clamped to max", func(t *testing.T) {
		p, err := ParsePage(httptest.NewRequest("GET", "/x?page=2&size=500", nil), 20, 100)
		require.NoError(t, err)
		assert.Equal(t, Page{Page: 2, Size: 100}, p)
	})

	for _, query := range []string{"page=0", "page=-1", "size=0", "page=abc", "size=1.5"} {
		t.Run("rejects "+query, func(t *testing.T) {
			_, err := ParsePage(httptest.NewRequest("GET", "/x?"+query, nil), 20, 100)
			assert.Error(t, err)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Paginate(items, Page{Page: 1, Size: 2}))
	assert.Equal(t, []int{5}, Paginate(items, Page{Page: 3, Size: 2}))
	assert.Empty(t, Paginate(items, Page{Page: 4, Size: 2}))
	assert.NotNil(t, Paginate(items, Page{Page: 4, Size: 2}))

	t.Run("huge page does not overflow", func(t *testing.T) {
		p, err := ParsePage(httptest.NewRequest("GET", "/x?page=922337203685477581&size=20", nil), 20, 100)
		require.NoError(t, err)

		var got []int
		require.NotPanics(t, func() { got = Paginate([]int{1, 2, 3}, p) })
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})
}
