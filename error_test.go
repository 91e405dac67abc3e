package minigame

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Classify(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, KindPermission, Classify(401, cause).Kind)
	assert.Equal(t, KindPermission, Classify(403, cause).Kind)
	assert.Equal(t, KindNotFound, Classify(404, cause).Kind)
	assert.Equal(t, KindOther, Classify(500, cause).Kind)
	assert.Equal(t, KindOther, Classify(0, cause).Kind)
	assert.ErrorIs(t, Classify(500, cause), cause)
}

func Test_Error_Message(t *testing.T) {
	assert.Equal(t, "minigame: permission (401): 401 Unauthorized", Classify(401, errors.New("401 Unauthorized")).Error())
	assert.Equal(t, "minigame: other: dial tcp: refused", Classify(0, errors.New("dial tcp: refused")).Error())
}

func Test_KindOf(t *testing.T) {
	wrapped := fmt.Errorf("fetch token: %w", Classify(404, errors.New("404 Not Found")))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.NotErrorIs(t, wrapped, ErrPermission)
	assert.Equal(t, KindOther, KindOf(errors.New("plain")))
	assert.Equal(t, "not_found", KindNotFound.String())
}

func Test_classifyAPIError(t *testing.T) {
	e := classifyAPIError(200, &APIError{Code: 40001, Msg: "invalid credential"})
	assert.Equal(t, KindPermission, e.Kind)
	assert.Equal(t, "40001 | invalid credential", e.Err.Error())

	e = classifyAPIError(200, &APIError{Code: -1, Msg: "system error"})
	assert.Equal(t, KindOther, e.Kind)
}
