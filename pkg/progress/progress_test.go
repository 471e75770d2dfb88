package progress

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProgressOutput(t *testing.T) {
	for name, tc := range map[string]struct {
		write func(out *bytes.Buffer)
		want  string
	}{
		"message": {
			write: func(out *bytes.Buffer) {
				Messagef(NewProgressOutput(out), "scan", "scanned %d roots", 3)
			},
			want: "scanned 3 roots\r\n",
		},
		"counts": {
			write: func(out *bytes.Buffer) {
				Update(NewProgressOutput(out), "parse", "parsing", 2, 10, "files")
			},
			want: "parsing 2/10 files\r",
		},
		"last update ends the line": {
			write: func(out *bytes.Buffer) {
				Update(NewProgressOutput(out), "parse", "parsing", 10, 10, "files")
			},
			want: "parsing 10/10 files\r\r\n",
		},
		"no counts": {
			write: func(out *bytes.Buffer) {
				Update(NewProgressOutput(out), "x", "waiting", 0, 0, "")
			},
			want: "waiting \r\n",
		},
	} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			tc.write(&out)
			if diff := cmp.Diff(tc.want, out.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}
