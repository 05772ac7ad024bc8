package dnf

import (
	"fmt"
	"strings"
)

// NEVRA holds the components of a name-version-release.arch package
// label, e.g. "package-1.2.3-1.fc39.x86_64".
type NEVRA struct {
	Name    string
	Version string
	Release string
	Arch    string
}

// ParseNEVRA decomposes a name-version-release.arch label: the arch is
// everything after the final dot, the version and release are the last
// two hyphen-delimited components before it, and the name is the rest
// (which may itself contain hyphens).
func ParseNEVRA(label string) (NEVRA, error) {
	dot := strings.LastIndex(label, ".")
	if dot <= 0 || dot == len(label)-1 {
		return NEVRA{}, fmt.Errorf("invalid package label %q: no arch suffix", label)
	}
	arch := label[dot+1:]

	components := strings.Split(label[:dot], "-")
	if len(components) < 3 {
		return NEVRA{}, fmt.Errorf("invalid package label %q: want name-version-release", label)
	}

	return NEVRA{
		Name:    strings.Join(components[:len(components)-2], "-"),
		Version: components[len(components)-2],
		Release: components[len(components)-1],
		Arch:    arch,
	}, nil
}
