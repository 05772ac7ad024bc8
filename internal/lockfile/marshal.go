package lockfile

import (
	"strings"
)

// Marshal serializes the lock file: a comment header, then each
// non-empty section in canonical order as a blank line, the bracketed
// section name, and one pipe-joined line per row. Sections with
// unrecognized names (kept by Parse for forward compatibility) are
// emitted after the canonical ones, in file order.
func Marshal(f *File) []byte {
	var sb strings.Builder

	sb.WriteString("# Fedora Package Lock File\n")
	sb.WriteString("# Generated: " + f.GeneratedAt + "\n")
	sb.WriteString("# System: " + f.System + "\n")
	sb.WriteString("# Format: package|version|release|arch|size|install_time|repository\n")

	emitted := make(map[string]bool)
	for _, name := range canonicalOrder {
		if s := f.Section(name); s != nil && len(s.Rows) > 0 {
			writeSection(&sb, s)
			emitted[name] = true
		}
	}
	for _, s := range f.Sections {
		if !emitted[s.Name] && len(s.Rows) > 0 {
			writeSection(&sb, s)
		}
	}

	return []byte(sb.String())
}

func writeSection(sb *strings.Builder, s *Section) {
	sb.WriteString("\n[" + s.Name + "]\n")
	sb.WriteString(sectionBody(s))
}

// sectionBody renders a section's rows as newline-terminated pipe-joined
// lines. This is also the exact byte sequence the section's checksum is
// computed over.
func sectionBody(s *Section) string {
	var sb strings.Builder
	for _, row := range s.Rows {
		sb.WriteString(strings.Join(row, "|"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FinalizeChecksums computes the SHA-256 digest of the serialized
// MANUAL_PACKAGES and AUTO_DEPENDENCIES bodies and replaces the CHECKSUMS
// section with the results. Digests cover the section content as it will
// appear on the wire, before the CHECKSUMS section itself exists.
func FinalizeChecksums(f *File) {
	var rows [][]string
	for _, entry := range []struct {
		section, label string
	}{
		{SectionManual, "manual_packages"},
		{SectionAuto, "auto_dependencies"},
	} {
		s := f.Section(entry.section)
		if s == nil || len(s.Rows) == 0 {
			continue
		}
		rows = append(rows, []string{entry.label, checksumBytes([]byte(sectionBody(s)))})
	}

	cs := f.ensureSection(SectionChecksums)
	cs.Rows = rows
}

// Verify recomputes the section digests and compares them with the
// stored CHECKSUMS entries. It returns ErrMissingSection when no
// CHECKSUMS section exists, and ErrChecksumMismatch when any digest
// disagrees. Unknown checksum labels are ignored.
func Verify(f *File) error {
	cs := f.Section(SectionChecksums)
	if cs == nil {
		return ErrMissingSection
	}

	labelToSection := map[string]string{
		"manual_packages":   SectionManual,
		"auto_dependencies": SectionAuto,
	}

	for _, row := range cs.Rows {
		if len(row) != 2 {
			continue
		}
		label, stored := row[0], row[1]
		sectionName, ok := labelToSection[label]
		if !ok {
			continue
		}
		s := f.Section(sectionName)
		if s == nil {
			return ErrMissingSection
		}
		if got := checksumBytes([]byte(sectionBody(s))); got != stored {
			return ErrChecksumMismatch
		}
	}

	return nil
}
