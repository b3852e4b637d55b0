package relevance_test

import (
	"strings"
	"testing"

	"github.com/akash-new/reviewscout"
	"github.com/akash-new/reviewscout/relevance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	t.Run("asks a yes or no question about the subject", func(t *testing.T) {
		t.Parallel()

		got := relevance.BuildPrompt(testLexicon(), "IK was fine")

		assert.Equal(t, "Does this text discuss Interview Kickstart's courses, instructors, fees, or overall experience? Answer yes or no.\n\nText: \"IK was fine\"", got)
	})

	t.Run("joins two topics with or", func(t *testing.T) {
		t.Parallel()

		lex := reviewscout.Lexicon{Subject: "Acme", Topics: []string{"pricing", "support"}}

		assert.True(t, strings.HasPrefix(relevance.BuildPrompt(lex, "x"), "Does this text discuss Acme's pricing or support?"))
	})

	t.Run("defaults topics", func(t *testing.T) {
		t.Parallel()

		got := relevance.BuildPrompt(reviewscout.Lexicon{Subject: "Acme"}, "x")

		assert.Contains(t, got, "Acme's courses, instructors, fees, or overall experience?")
	})

	t.Run("bounds content", func(t *testing.T) {
		t.Parallel()

		got := relevance.BuildPrompt(testLexicon(), strings.Repeat("é", relevance.MaxPromptContent+50))

		assert.Equal(t, relevance.MaxPromptContent, strings.Count(got, "é"))
	})
}

func TestParseAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		resp string
		want bool
	}{
		{resp: "Yes", want: true},
		{resp: "  yes.\n", want: true},
		{resp: "I would say yes", want: true},
		{resp: "No", want: false},
		{resp: "no, although yes in part", want: false},
		{resp: "Nope, yes is wrong", want: false},
		{resp: "Maybe", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.resp, func(t *testing.T) {
			t.Parallel()

			got, err := relevance.ParseAnswer(tt.resp)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("empty response is malformed", func(t *testing.T) {
		t.Parallel()

		_, err := relevance.ParseAnswer(" \n ")

		assert.Equal(t, reviewscout.EINVALID, reviewscout.ErrorCode(err))
	})
}
