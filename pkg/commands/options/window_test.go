package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowRange(t *testing.T) {
	now := time.Date(2024, 3, 21, 14, 5, 0, 0, time.Local)

	o := WindowOptions{Last: "3d"}
	since, until, label, err := o.Range(now)
	require.NoError(t, err)
	assert.Equal(t, now, until)
	assert.Equal(t, now.Add(-72*time.Hour), since)
	assert.Equal(t, "last 3d", label)

	o = WindowOptions{Last: "3d", Since: "3/1", Until: "3/10"}
	since, until, label, err = o.Range(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), since)
	assert.Equal(t, 10, until.Day())
	assert.Equal(t, 23, until.Hour())
	assert.Equal(t, "2024-03-01 → 2024-03-10", label)

	o = WindowOptions{Last: "soon"}
	_, _, _, err = o.Range(now)
	require.Error(t, err)
}

func TestOutputFormat(t *testing.T) {
	o := OutputOptions{}
	f, err := o.Format()
	require.NoError(t, err)
	assert.Empty(t, f)

	o.YAML = true
	f, err = o.Format()
	require.NoError(t, err)
	assert.Equal(t, "yaml", f)

	o.JSON = true
	_, err = o.Format()
	require.Error(t, err)
}
