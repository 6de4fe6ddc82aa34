package settings

import (
	"bytes"
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/settings"
	"tableflip.dev/kammi/pkg/store"
)

func ptr[T any](v T) *T { return &v }

func TestSetApply(t *testing.T) {
	tests := map[string]struct {
		set     Set
		want    func(*testing.T, settings.Record)
		wantErr bool
	}{
		"name": {
			set: Set{Name: ptr("  Ada ")},
			want: func(t *testing.T, rec settings.Record) {
				assert.Equal(t, "Ada", rec.Name)
			},
		},
		"empty name": {
			set:     Set{Name: ptr(" ")},
			wantErr: true,
		},
		"preset": {
			set: Set{Theme: ptr("paper"), Fade: ptr(false)},
			want: func(t *testing.T, rec settings.Record) {
				assert.Equal(t, "paper", rec.Theme)
				assert.False(t, rec.FadeEffect)
			},
		},
		"unknown theme": {
			set:     Set{Theme: ptr("neon")},
			wantErr: true,
		},
		"custom background": {
			set: Set{Background: ptr("F5F5DC")},
			want: func(t *testing.T, rec settings.Record) {
				assert.Equal(t, settings.ThemeCustom, rec.Theme)
				assert.Equal(t, "#f5f5dc", rec.CustomTheme.BgColor)
				assert.Equal(t, "#2d2d2d", rec.CustomTheme.TextColor)
				assert.Equal(t, "Georgia", rec.CustomTheme.FontFamily)
				require.NotNil(t, rec.SavedTheme)
				assert.Equal(t, "#1a1a1a", rec.SavedTheme.BgColor)
			},
		},
		"bad background": {
			set:     Set{Background: ptr("not-a-colour")},
			wantErr: true,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rec := settings.Defaults()
			err := tc.set.apply(&rec)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.want(t, rec)
		})
	}
}

func TestSetDo(t *testing.T) {
	base := t.TempDir()
	cfg := store.StaticConfig(filepath.Join(base, "Kammi"), filepath.Join(base, "settings.json"))
	svc, err := app.New(cfg, log.New(io.Discard, "", 0))
	require.NoError(t, err)

	out := new(bytes.Buffer)
	s := &Set{Service: svc, Name: ptr("Ada"), Theme: ptr("focus"), Out: out}
	require.NoError(t, s.Do(context.Background()))
	assert.Contains(t, out.String(), "Ada")

	res := svc.GetSettings()
	require.True(t, res.Success)
	assert.Equal(t, "Ada", res.Settings.Name)
	assert.Equal(t, "focus", res.Settings.Theme)

	// A failed validation leaves the record untouched.
	bad := &Set{Service: svc, Name: ptr(""), Theme: ptr("paper"), Out: out}
	assert.Error(t, bad.Do(context.Background()))
	assert.Equal(t, "focus", svc.Settings.Current().Theme)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateName("Ada"))
	assert.Error(t, validateName("   "))

	assert.NoError(t, validateColor("#1a1a1a"))
	assert.NoError(t, validateColor("ffffff"))
	assert.Error(t, validateColor("#12"))
	assert.Error(t, validateColor(""))

	assert.Equal(t, 2, indexOf([]string{"a", "b", "c"}, "c"))
	assert.Equal(t, 0, indexOf([]string{"a"}, "z"))
}
