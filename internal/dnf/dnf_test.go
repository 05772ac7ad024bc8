package dnf

import (
	"testing"
)

func TestParseNEVRA(t *testing.T) {
	tests := []struct {
		label string
		want  NEVRA
	}{
		{
			label: "package-1.2.3-1.fc39.x86_64",
			want:  NEVRA{Name: "package", Version: "1.2.3", Release: "1.fc39", Arch: "x86_64"},
		},
		{
			label: "another-pkg-2.0.0-5.fc39.noarch",
			want:  NEVRA{Name: "another-pkg", Version: "2.0.0", Release: "5.fc39", Arch: "noarch"},
		},
		{
			label: "complex-name-with-dashes-1.0-1.fc39.x86_64",
			want:  NEVRA{Name: "complex-name-with-dashes", Version: "1.0", Release: "1.fc39", Arch: "x86_64"},
		},
	}

	for _, tt := range tests {
		got, err := ParseNEVRA(tt.label)
		if err != nil {
			t.Errorf("ParseNEVRA(%q) failed: %v", tt.label, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseNEVRA(%q) = %+v, want %+v", tt.label, got, tt.want)
		}
	}
}

func TestParseNEVRA_Invalid(t *testing.T) {
	for _, label := range []string{"", "noarch-suffix", "justname.x86_64", "name-1.0.x86_64"} {
		if _, err := ParseNEVRA(label); err == nil {
			t.Errorf("ParseNEVRA(%q) should fail", label)
		}
	}
}

func TestParseNameLines(t *testing.T) {
	output := "kernel\nsystemd\n\nbash\n"
	set := parseNameLines(output)
	if set.Len() != 3 {
		t.Errorf("parsed %d names, want 3", set.Len())
	}
	for _, name := range []string{"kernel", "systemd", "bash"} {
		if !set.Contains(name) {
			t.Errorf("set missing %q", name)
		}
	}
}

func TestParseGroupInfo(t *testing.T) {
	output := `Group: Core
 Description: Smallest possible installation
 Mandatory Packages:
   bash
   coreutils
   glibc
 Default Packages:
   dnf
   kernel
 Optional Packages:
   dracut-config-generic
`
	set := parseGroupInfo(output)

	for _, name := range []string{"bash", "coreutils", "glibc", "dnf", "kernel", "dracut-config-generic"} {
		if !set.Contains(name) {
			t.Errorf("set missing %q", name)
		}
	}
	if set.Contains("Group: Core") || set.Contains("Smallest possible installation") {
		t.Error("headings leaked into the package set")
	}
	// The description line is indented but precedes any Packages heading.
	if set.Len() != 6 {
		t.Errorf("parsed %d packages, want 6: %v", set.Len(), set.Names())
	}
}

func TestParseRepolist(t *testing.T) {
	output := `repo id          repo name                 status
fedora           Fedora 39 - x86_64        enabled
updates          Fedora 39 - Updates       enabled
updates-testing  Fedora 39 - Test Updates  disabled
`
	repos := parseRepolist(output)
	if len(repos) != 3 {
		t.Fatalf("parsed %d repos, want 3", len(repos))
	}

	want := map[string]bool{"fedora": true, "updates": true, "updates-testing": false}
	for _, repo := range repos {
		enabled, ok := want[repo.Name]
		if !ok {
			t.Errorf("unexpected repo %q", repo.Name)
			continue
		}
		if repo.Enabled != enabled {
			t.Errorf("repo %s enabled = %v, want %v", repo.Name, repo.Enabled, enabled)
		}
	}
}
