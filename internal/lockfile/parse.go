package lockfile

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Parse reads a lock file with a single forward scan. A line of the form
// [NAME] opens (or re-opens, resetting) the current section; unknown
// names are kept verbatim for forward compatibility. A line containing a
// pipe is split on pipes and appended to the current section. Pipe lines
// before any section header, comments, and blank lines are discarded.
// Parse never fails on malformed rows; callers needing strict field
// validation use RecordFromRow or ValidateRecords on retrieval.
func Parse(r io.Reader) (*File, error) {
	f := &File{}
	var current *Section

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") && len(line) > 2 {
			name := line[1 : len(line)-1]
			current = f.Section(name)
			if current == nil {
				current = &Section{Name: name}
				f.Sections = append(f.Sections, current)
			} else {
				// A repeated header replaces the section's contents.
				current.Rows = nil
			}
			continue
		}

		if current != nil && strings.Contains(line, "|") {
			current.Rows = append(current.Rows, strings.Split(line, "|"))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return f, nil
}

// ParseFile parses the lock file at path.
func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	return Parse(fh)
}
