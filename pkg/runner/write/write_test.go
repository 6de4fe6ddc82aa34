package write

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	teaui "tableflip.dev/kammi/pkg/tui/app"
)

func TestOptions(t *testing.T) {
	tests := map[string]struct {
		w       Write
		want    teaui.Options
		wantErr bool
	}{
		"default greets": {
			want: teaui.Options{Start: teaui.StartGreeting},
		},
		"new": {
			w:    Write{New: true},
			want: teaui.Options{Start: teaui.StartNew},
		},
		"continue": {
			w:    Write{Continue: true},
			want: teaui.Options{Start: teaui.StartContinue},
		},
		"session": {
			w:    Write{Session: "On 1st of Mar, 2024, 9-00 am"},
			want: teaui.Options{Start: teaui.StartOpen, Filename: "On 1st of Mar, 2024, 9-00 am"},
		},
		"conflict": {
			w:       Write{New: true, Session: "x"},
			wantErr: true,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tc.w.options()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
