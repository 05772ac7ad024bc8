package classify

import (
	"regexp"
	"sort"
)

// defaultCategories maps category names to anchored name patterns. A
// package counts toward a category when its name matches the pattern at
// the start of the string.
var defaultCategories = map[string]*regexp.Regexp{
	"development": regexp.MustCompile(`^(gcc|clang|make|cmake|git|nodejs|npm|yarn|cargo|rustc|go|java|maven|gradle)`),
	"python":      regexp.MustCompile(`^python`),
	"containers":  regexp.MustCompile(`^(docker|podman|buildah|skopeo|kubernetes|kubectl|helm)`),
	"editors":     regexp.MustCompile(`^(vim|emacs|neovim|code|atom|sublime)`),
	"media":       regexp.MustCompile(`^(vlc|mpv|ffmpeg|gimp|inkscape|blender|obs)`),
}

// Categorize buckets package names into the default categories and
// returns the per-category member lists, sorted for stable output. A
// name matching multiple categories appears in each of them; unmatched
// names are left out.
func Categorize(names []string) map[string][]string {
	return CategorizeWith(names, defaultCategories)
}

// CategorizeWith buckets package names using caller-supplied patterns.
func CategorizeWith(names []string, categories map[string]*regexp.Regexp) map[string][]string {
	out := make(map[string][]string, len(categories))
	for category, pattern := range categories {
		var members []string
		for _, name := range names {
			if pattern.MatchString(name) {
				members = append(members, name)
			}
		}
		sort.Strings(members)
		out[category] = members
	}
	return out
}

// CompileCategories compiles a name→pattern map, as read from the config
// file, into the form CategorizeWith accepts.
func CompileCategories(patterns map[string]string) (map[string]*regexp.Regexp, error) {
	out := make(map[string]*regexp.Regexp, len(patterns))
	for name, expr := range patterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		out[name] = re
	}
	return out, nil
}
