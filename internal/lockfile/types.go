// Package lockfile implements the sectioned pipe-delimited lock-file
// format: serialization, tolerant parsing, SHA-256 section checksums,
// and strict record validation.
package lockfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Canonical section names, in the order they are written.
const (
	SectionManual       = "MANUAL_PACKAGES"
	SectionAuto         = "AUTO_DEPENDENCIES"
	SectionRepositories = "REPOSITORIES"
	SectionChecksums    = "CHECKSUMS"
)

// canonicalOrder fixes the section emission order for Marshal.
var canonicalOrder = []string{
	SectionManual,
	SectionAuto,
	SectionRepositories,
	SectionChecksums,
}

// recordFieldCount is the exact number of pipe-delimited fields in a
// package record line.
const recordFieldCount = 7

var (
	// ErrMalformedRecord is returned by strict validation when a row has
	// the wrong field count or unparseable field values. Parsing itself
	// never returns it.
	ErrMalformedRecord = errors.New("lockfile: malformed record")

	// ErrChecksumMismatch is returned by Verify when a recomputed section
	// digest disagrees with the stored CHECKSUMS entry.
	ErrChecksumMismatch = errors.New("lockfile: checksum mismatch")

	// ErrMissingSection is returned by Verify when the lock file has no
	// CHECKSUMS section to verify against.
	ErrMissingSection = errors.New("lockfile: section not found")
)

// Record is one package entry in MANUAL_PACKAGES or AUTO_DEPENDENCIES.
type Record struct {
	Name        string
	Version     string
	Release     string
	Arch        string
	SizeBytes   int64
	InstallTime int64
	Repository  string
}

// Fields returns the record's seven pipe-delimited field values in wire
// order.
func (r Record) Fields() []string {
	return []string{
		r.Name,
		r.Version,
		r.Release,
		r.Arch,
		strconv.FormatInt(r.SizeBytes, 10),
		strconv.FormatInt(r.InstallTime, 10),
		r.Repository,
	}
}

// RecordFromRow converts a parsed row back into a Record. Returns
// ErrMalformedRecord when the row does not have exactly seven fields or
// the numeric fields do not parse.
func RecordFromRow(row []string) (Record, error) {
	if len(row) != recordFieldCount {
		return Record{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, recordFieldCount, len(row))
	}

	size, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: bad size field %q", ErrMalformedRecord, row[4])
	}
	installTime, err := strconv.ParseInt(row[5], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: bad install_time field %q", ErrMalformedRecord, row[5])
	}

	return Record{
		Name:        row[0],
		Version:     row[1],
		Release:     row[2],
		Arch:        row[3],
		SizeBytes:   size,
		InstallTime: installTime,
		Repository:  row[6],
	}, nil
}

// RepoStatus is one repository entry in the REPOSITORIES section.
type RepoStatus struct {
	Name    string
	Enabled bool
}

// Fields returns the repository row's wire fields.
func (r RepoStatus) Fields() []string {
	state := "disabled"
	if r.Enabled {
		state = "enabled"
	}
	return []string{r.Name, state}
}

// Section is a named, ordered sequence of rows. Each row is the
// pipe-split field list of one line.
type Section struct {
	Name string
	Rows [][]string
}

// File is an in-memory lock file: ordered sections plus the header
// metadata written as comments.
type File struct {
	// GeneratedAt is the human-readable generation timestamp written in
	// the header comment.
	GeneratedAt string
	// System identifies the host the lock was taken on.
	System string

	Sections []*Section
}

// Section returns the named section, or nil when absent.
func (f *File) Section(name string) *Section {
	for _, s := range f.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// ensureSection returns the named section, creating it at the end of the
// file when absent.
func (f *File) ensureSection(name string) *Section {
	if s := f.Section(name); s != nil {
		return s
	}
	s := &Section{Name: name}
	f.Sections = append(f.Sections, s)
	return s
}

// AddRecord appends a package record to the named section.
func (f *File) AddRecord(section string, rec Record) {
	s := f.ensureSection(section)
	s.Rows = append(s.Rows, rec.Fields())
}

// AddRepository appends a repository-status row to the REPOSITORIES
// section.
func (f *File) AddRepository(repo RepoStatus) {
	s := f.ensureSection(SectionRepositories)
	s.Rows = append(s.Rows, repo.Fields())
}

// Records decodes the named section's rows into Records. Rows that fail
// strict validation are returned as an error; use Section().Rows for the
// tolerant view.
func (f *File) Records(section string) ([]Record, error) {
	s := f.Section(section)
	if s == nil {
		return nil, nil
	}
	records := make([]Record, 0, len(s.Rows))
	for _, row := range s.Rows {
		rec, err := RecordFromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// PackageNames returns the first field of every row in the named
// section. Malformed rows still contribute their name field, matching
// the tolerant read path.
func (f *File) PackageNames(section string) []string {
	s := f.Section(section)
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		if len(row) > 0 && strings.TrimSpace(row[0]) != "" {
			names = append(names, row[0])
		}
	}
	return names
}
