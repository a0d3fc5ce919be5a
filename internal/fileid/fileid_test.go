package fileid

import (
	"strings"
	"testing"
)

func TestFileDocID(t *testing.T) {
	a := FileDocID("/data/docs/report.txt")
	b := FileDocID("/data/docs/report.txt")
	if a != b {
		t.Errorf("same path must yield same ID: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "file:") {
		t.Errorf("ID missing file: prefix: %q", a)
	}
	if c := FileDocID("/data/docs/other.txt"); c == a {
		t.Error("different paths must yield different IDs")
	}
	// Clean path and unclean path hash identically.
	if d := FileDocID("/data/docs/../docs/report.txt"); d != a {
		t.Errorf("unclean path not normalized: %q vs %q", d, a)
	}
}
