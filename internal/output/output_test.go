package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/dnflock/internal/lockfile"
)

func TestProgressBar_TruncatingPercent(t *testing.T) {
	p := NewProgress(7, "processing")
	p.SetWriter(&bytes.Buffer{})

	p.IncrementBy(3)
	if got := p.Percent(); got != 42 {
		t.Errorf("Percent() after 3/7 = %d, want 42", got)
	}

	p = NewProgress(1000, "processing")
	p.SetWriter(&bytes.Buffer{})
	p.IncrementBy(333)
	if got := p.Percent(); got != 33 {
		t.Errorf("Percent() after 333/1000 = %d, want 33", got)
	}
}

func TestProgressBar_NonTTYEmitsSingleCompletionLine(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(4, "done")
	p.SetWriter(&buf)

	for i := 0; i < 4; i++ {
		p.Increment()
	}
	p.Finish()

	out := buf.String()
	if strings.Count(out, "100%") != 1 {
		t.Errorf("non-TTY output should contain exactly one 100%% line:\n%q", out)
	}
	if !strings.Contains(out, "done") {
		t.Errorf("output missing description: %q", out)
	}
}

func TestProgressBar_ClampsAtTotal(t *testing.T) {
	p := NewProgress(10, "clamp")
	p.SetWriter(&bytes.Buffer{})
	p.IncrementBy(25)
	if got := p.Percent(); got != 100 {
		t.Errorf("Percent() = %d, want 100", got)
	}
}

func TestSpinner_NonTTYPrintsMessageOnce(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("working")
	s.SetWriter(&buf)

	s.Start()
	s.StopWithMessage("finished")

	out := buf.String()
	if strings.Count(out, "working") != 1 {
		t.Errorf("message should appear exactly once: %q", out)
	}
	if !strings.Contains(out, "finished") {
		t.Errorf("stop message missing: %q", out)
	}
}

func TestRenderClassificationSummary(t *testing.T) {
	out := RenderClassificationSummary(ClassificationSummary{
		Total:   13,
		Default: 6,
		Manual:  4,
		Auto:    3,
	})

	// 4/13 = 30.77 → 30, 3/13 = 23.07 → 23: truncating, not rounding.
	for _, want := range []string{"manual", "auto-dependency", "30%", "23%", "46%", "13"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRecordTable(t *testing.T) {
	records := []lockfile.Record{
		{Name: "nodejs", Version: "20.0.0", Release: "1.fc39", Arch: "x86_64", SizeBytes: 1048576, Repository: "fedora"},
		{Name: "git", Version: "2.41.0", Release: "1.fc39", Arch: "x86_64", SizeBytes: 12345, Repository: "fedora"},
	}

	out := RenderRecordTable(records)
	lines := strings.Split(strings.TrimSpace(out), "\n")

	// Header, separator, then rows sorted by name.
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[2], "git") {
		t.Errorf("rows not sorted by name:\n%s", out)
	}
	if !strings.Contains(out, "1.0 MB") {
		t.Errorf("size not humanized:\n%s", out)
	}
}

func TestRenderRecordTable_Empty(t *testing.T) {
	if out := RenderRecordTable(nil); !strings.Contains(out, "No packages") {
		t.Errorf("empty table output = %q", out)
	}
}

func TestRenderDiffTable(t *testing.T) {
	out := RenderDiffTable("MANUAL_PACKAGES", []string{"git"}, []string{"vim"}, []string{"gcc"})

	if !strings.Contains(out, "1 only in A, 1 only in B, 1 in both") {
		t.Errorf("diff counts missing:\n%s", out)
	}
	if !strings.Contains(out, "- git") || !strings.Contains(out, "+ vim") {
		t.Errorf("diff markers missing:\n%s", out)
	}
}

func TestRenderCategoryTable(t *testing.T) {
	out := RenderCategoryTable(map[string][]string{
		"python":     {"python3", "python3-pip"},
		"containers": {"podman"},
	})

	if !strings.Contains(out, "python") || !strings.Contains(out, "2") {
		t.Errorf("category table missing python row:\n%s", out)
	}
	// Categories render sorted.
	if strings.Index(out, "containers") > strings.Index(out, "python") {
		t.Errorf("categories not sorted:\n%s", out)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	if got := FormatRelativeTime(time.Time{}); got != "never" {
		t.Errorf("zero time = %q, want never", got)
	}
	if got := FormatRelativeTime(time.Now().Add(-2 * time.Hour)); got != "2h ago" {
		t.Errorf("2h old = %q", got)
	}
	if got := FormatRelativeTime(time.Now().Add(-48 * time.Hour)); got != "2d ago" {
		t.Errorf("48h old = %q", got)
	}
}
