package key

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	k := Key{Out: &buf}
	require.NoError(t, k.Do(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "save and quit")
	assert.Contains(t, out, "filter sessions")
	assert.Contains(t, out, "Themes")
	assert.Contains(t, out, "midnight")
	assert.Contains(t, out, "custom")
}
