package response

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type taggedRequest struct {
	Tags []string `binding:"required,min=1,dive,notblank"`
}

func TestNotBlankRejectsWhitespaceTags(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(taggedRequest{Tags: []string{"eco"}}))

	err := binding.Validator.ValidateStruct(taggedRequest{Tags: []string{"eco", "  "}})
	assert.Error(t, err)
	assert.Contains(t, validationMessage(err), "notblank")
}
