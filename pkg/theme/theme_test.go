package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/kammi/pkg/settings"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	rec := settings.Defaults()
	b := Resolve(rec)
	assert.Equal(t, Midnight, b.Name)
	assert.Equal(t, "#1a1a1a", b.BgColor)
	assert.Equal(t, "#c4b69c", b.TextColor)

	rec.Theme = Paper
	b = Resolve(rec)
	assert.Equal(t, "Times New Roman", b.FontFamily)
	assert.Equal(t, "#f5f5dc", b.BgColor)

	rec.Theme = settings.ThemeCustom
	rec.CustomTheme = settings.Theme{FontFamily: "Mono", FontSize: 14, BgColor: "#000000", TextColor: "#ffffff"}
	b = Resolve(rec)
	assert.Equal(t, settings.ThemeCustom, b.Name)
	assert.Equal(t, "Mono", b.FontFamily)

	rec.Theme = "neon"
	assert.Equal(t, Midnight, Resolve(rec).Name)
}

func TestContrastColor(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"#ffffff":  "#2d2d2d",
		"#f5f5dc":  "#2d2d2d",
		"#000000":  "#e8e0d0",
		"#1a1a1a":  "#e8e0d0",
		"#0000ff":  "#e8e0d0",
		"#ffff00":  "#2d2d2d",
		"nonsense": "#e8e0d0",
	}
	for bg, want := range tests {
		assert.Equal(t, want, ContrastColor(bg), bg)
	}
}

func TestCustom(t *testing.T) {
	t.Parallel()

	b, err := Custom("", 0, "F5F5DC")
	require.NoError(t, err)
	assert.Equal(t, settings.ThemeCustom, b.Name)
	assert.Equal(t, "Georgia", b.FontFamily)
	assert.Equal(t, 20, b.FontSize)
	assert.Equal(t, "#f5f5dc", b.BgColor)
	assert.Equal(t, "#2d2d2d", b.TextColor)

	_, err = Custom("Georgia", 20, "#12")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestNext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Paper, Next(Midnight))
	assert.Equal(t, Focus, Next(Paper))
	assert.Equal(t, settings.ThemeCustom, Next(Focus))
	assert.Equal(t, Midnight, Next(settings.ThemeCustom))
	assert.Equal(t, Midnight, Next("unknown"))
}

func TestIsKnown(t *testing.T) {
	t.Parallel()

	assert.True(t, IsKnown(Focus))
	assert.True(t, IsKnown(settings.ThemeCustom))
	assert.False(t, IsKnown("neon"))
}

func TestDimColor(t *testing.T) {
	t.Parallel()

	dim := DimColor(Bundle{Theme: settings.Theme{BgColor: "#000000", TextColor: "#ffffff"}})
	assert.NotEqual(t, "#000000", dim)
	assert.NotEqual(t, "#ffffff", dim)
	assert.Regexp(t, `^#[0-9a-f]{6}$`, dim)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	d := Describe()
	require.Len(t, d, 4)
	assert.Contains(t, d[0], "focus")
	assert.Contains(t, d[3], settings.ThemeCustom)
}
