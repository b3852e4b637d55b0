package reviewscout_test

import (
	"encoding/json"
	"testing"

	"github.com/akash-new/reviewscout"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := reviewscout.Errorf(reviewscout.ENOTFOUND, "platform %q not found", "Yelp")

	assert.Equal(t, reviewscout.ENOTFOUND, reviewscout.ErrorCode(err))
	assert.Equal(t, "platform \"Yelp\" not found", reviewscout.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, reviewscout.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, reviewscout.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := json.Unmarshal([]byte("{"), &struct{}{})

	assert.Equal(t, reviewscout.EINTERNAL, reviewscout.ErrorCode(err))
	assert.Equal(t, "Internal error.", reviewscout.ErrorMessage(err))
}
