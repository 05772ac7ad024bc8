package lockfile

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var hexDigestPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// validateRecord applies the strict field rules to a decoded Record.
func validateRecord(r Record) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Version, validation.Required),
		validation.Field(&r.Release, validation.Required),
		validation.Field(&r.Arch, validation.Required),
		validation.Field(&r.SizeBytes, validation.Min(0)),
		validation.Field(&r.InstallTime, validation.Min(0)),
	)
}

// ValidateRecords performs the strict validation Parse deliberately
// skips: every row in MANUAL_PACKAGES and AUTO_DEPENDENCIES must decode
// into a well-formed Record, and every CHECKSUMS row must carry a
// 64-character lowercase hex digest. Returns an error wrapping
// ErrMalformedRecord on the first violation.
func ValidateRecords(f *File) error {
	for _, name := range []string{SectionManual, SectionAuto} {
		s := f.Section(name)
		if s == nil {
			continue
		}
		for i, row := range s.Rows {
			rec, err := RecordFromRow(row)
			if err != nil {
				return fmt.Errorf("%s row %d: %w", name, i+1, err)
			}
			if err := validateRecord(rec); err != nil {
				return fmt.Errorf("%s row %d (%s): %w: %v", name, i+1, rec.Name, ErrMalformedRecord, err)
			}
		}
	}

	if cs := f.Section(SectionChecksums); cs != nil {
		for i, row := range cs.Rows {
			if len(row) != 2 {
				return fmt.Errorf("%s row %d: %w: expected 2 fields, got %d",
					SectionChecksums, i+1, ErrMalformedRecord, len(row))
			}
			if !hexDigestPattern.MatchString(row[1]) {
				return fmt.Errorf("%s row %d (%s): %w: digest is not 64-char lowercase hex",
					SectionChecksums, i+1, row[0], ErrMalformedRecord)
			}
		}
	}

	return nil
}
