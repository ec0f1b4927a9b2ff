// Package version provides version normalization, validation and comparison,
// and reads and rewrites the version field recorded in project metadata.
package version

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TagPrefix is the optional leading character on requested versions and the
// prefix carried by every release tag.
const TagPrefix = "v"

// NumericRegex validates dotted numeric version strings such as "0.3" or "1.4.0".
var NumericRegex = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)

// Normalize strips surrounding whitespace and a single leading "v".
func Normalize(requested string) string {
	return strings.TrimPrefix(strings.TrimSpace(requested), TagPrefix)
}

// Validate checks that a normalized version contains only digits and
// single periods between them.
func Validate(version string) error {
	if !NumericRegex.MatchString(version) {
		return fmt.Errorf("invalid version format: %q (expected digits separated by periods, e.g. 1.4.0)", version)
	}
	return nil
}

// Tag returns the tag name for version using format, where "{version}"
// is replaced by the normalized version.
func Tag(format, version string) string {
	return strings.ReplaceAll(format, "{version}", Normalize(version))
}

// Compare compares two dotted numeric versions.
// Returns -1 if a < b, 0 if a == b, 1 if a > b. Missing trailing
// components count as zero, so "1.4" and "1.4.0" compare equal.
func Compare(a, b string) (int, error) {
	pa, err := parts(a)
	if err != nil {
		return 0, err
	}
	pb, err := parts(b)
	if err != nil {
		return 0, err
	}

	n := max(len(pa), len(pb))
	for i := 0; i < n; i++ {
		var x, y int
		if i < len(pa) {
			x = pa[i]
		}
		if i < len(pb) {
			y = pb[i]
		}
		if c := cmp.Compare(x, y); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

func parts(version string) ([]int, error) {
	if err := Validate(version); err != nil {
		return nil, err
	}
	fields := strings.Split(version, ".")
	result := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid version component %q: %w", f, err)
		}
		result[i] = n
	}
	return result, nil
}
