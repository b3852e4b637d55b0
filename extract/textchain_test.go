package extract_test

import (
	"errors"
	"testing"

	"github.com/akash-new/reviewscout/extract"
	"github.com/akash-new/reviewscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextChain(t *testing.T) {
	t.Parallel()

	failing := &mock.TextExtractor{
		ExtractTextFn: func(html string) (string, error) { return "", errors.New("failed") },
	}
	empty := &mock.TextExtractor{
		ExtractTextFn: func(html string) (string, error) { return "  ", nil },
	}
	good := &mock.TextExtractor{
		ExtractTextFn: func(html string) (string, error) { return " text ", nil },
	}

	t.Run("returns first non-empty text", func(t *testing.T) {
		t.Parallel()

		text, err := extract.TextChain{failing, empty, good}.ExtractText("<p>x</p>")

		require.NoError(t, err)
		assert.Equal(t, "text", text)
	})

	t.Run("joins errors when nothing succeeds", func(t *testing.T) {
		t.Parallel()

		text, err := extract.TextChain{failing, empty}.ExtractText("<p>x</p>")

		assert.Error(t, err)
		assert.Empty(t, text)
	})

	t.Run("empty chain yields nothing", func(t *testing.T) {
		t.Parallel()

		text, err := extract.TextChain{}.ExtractText("<p>x</p>")

		assert.NoError(t, err)
		assert.Empty(t, text)
	})
}
