package goquery_test

import (
	"strings"
	"testing"

	"github.com/akash-new/reviewscout/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainerStrategy(t *testing.T) {
	t.Parallel()

	t.Run("returns each matching container", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="review-container"><h3>Ann</h3></div>
<div class="other">skip</div>
<div class="review-container"><h3>Bob</h3></div>
</body></html>`

		s := goquery.NewContainerStrategy("containers", "div.review-container")

		blocks, err := s.Blocks(html)

		require.NoError(t, err)
		require.Len(t, blocks, 2)
		assert.Equal(t, `<div class="review-container"><h3>Ann</h3></div>`, blocks[0])
		assert.Contains(t, blocks[1], "Bob")
		assert.Equal(t, "containers", s.Name())
	})

	t.Run("no match yields no blocks", func(t *testing.T) {
		t.Parallel()

		blocks, err := goquery.NewContainerStrategy("containers", "div.review-container").Blocks("Hello world")

		require.NoError(t, err)
		assert.Empty(t, blocks)
	})

	t.Run("loose selector skips wrappers around other matches", func(t *testing.T) {
		t.Parallel()

		html := `<div class="reviews-list">
<div class="review-card"><h3>Ann</h3><div class="review-body">one</div></div>
<div class="review-card"><h3>Bob</h3><div class="review-body">two</div></div>
</div>`

		s := goquery.NewLooseContainerStrategy("loose", `div[class*="review"]:has(h3)`)

		blocks, err := s.Blocks(html)

		require.NoError(t, err)
		require.Len(t, blocks, 2)
		assert.True(t, strings.HasPrefix(blocks[0], `<div class="review-card">`))
		assert.Contains(t, blocks[1], "two")
	})

	t.Run("strict selector returns nested matches too", func(t *testing.T) {
		t.Parallel()

		html := `<div class="review"><div class="review">inner</div></div>`

		blocks, err := goquery.NewContainerStrategy("strict", "div.review").Blocks(html)

		require.NoError(t, err)
		assert.Len(t, blocks, 2)
	})
}
