package ahocorasick_test

import (
	"sync"
	"testing"

	"github.com/akash-new/reviewscout/ahocorasick"
	"github.com/stretchr/testify/assert"
)

func TestMatcher_Match(t *testing.T) {
	t.Parallel()

	t.Run("returns matched keywords in keyword order", func(t *testing.T) {
		t.Parallel()

		m := ahocorasick.NewMatcher([]string{"mentor", "fee", "mock interview"})

		got := m.Match("The FEE was steep but my Mentor ran a great mock interview.")

		assert.Equal(t, []string{"mentor", "fee", "mock interview"}, got)
	})

	t.Run("matches substrings", func(t *testing.T) {
		t.Parallel()

		m := ahocorasick.NewMatcher([]string{"interview kickstart"})

		assert.Equal(t, []string{"interview kickstart"}, m.Match("I joined interview kickstart's program"))
	})

	t.Run("normalizes compatibility characters", func(t *testing.T) {
		t.Parallel()

		m := ahocorasick.NewMatcher([]string{"since 2014"})

		assert.NotEmpty(t, m.Match("Operating ｓｉｎｃｅ ２０１４ in the Bay Area"))
	})

	t.Run("reports each keyword once", func(t *testing.T) {
		t.Parallel()

		m := ahocorasick.NewMatcher([]string{"good"})

		assert.Equal(t, []string{"good"}, m.Match("good good good"))
	})

	t.Run("drops blank and duplicate keywords", func(t *testing.T) {
		t.Parallel()

		m := ahocorasick.NewMatcher([]string{"Course", "course", "  ", ""})

		assert.Equal(t, 1, m.Len())
	})

	t.Run("no keywords never match", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, ahocorasick.NewMatcher(nil).Match("anything"))
	})

	t.Run("no match returns nil", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, ahocorasick.NewMatcher([]string{"salary"}).Match("weather was nice"))
	})

	t.Run("safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		m := ahocorasick.NewMatcher([]string{"course", "coach"})

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					assert.Equal(t, []string{"course", "coach"}, m.Match("the course had a coach"))
				}
			}()
		}
		wg.Wait()
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "interview kickstart", ahocorasick.Normalize("  Interview KICKSTART "))
	assert.Equal(t, "fi", ahocorasick.Normalize("ﬁ"))
}
