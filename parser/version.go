package parser

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SupportedFormats is the constraint documents must satisfy.
const SupportedFormats = "^1"

// ErrUnsupportedFormat is returned for documents written in a format this
// version cannot read.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// CheckFormatVersion reports whether a document's format version satisfies
// SupportedFormats.
func CheckFormatVersion(version string) error {
	return CheckFormatConstraint(SupportedFormats, version)
}

// CheckFormatConstraint reports whether version satisfies constraint.
func CheckFormatConstraint(constraint, version string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}

	if version == "" {
		return fmt.Errorf("%w: missing format_version", ErrUnsupportedFormat)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: invalid format_version %q: %v", ErrUnsupportedFormat, version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: format_version %s does not satisfy %s", ErrUnsupportedFormat, v.Original(), constraint)
	}
	return nil
}
