package serve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "serve", Cmd.Use)
	assert.Contains(t, Cmd.Long, "/v1")
	assert.NotNil(t, Cmd.RunE)
}
