package version

import (
	"fmt"
	"os"
	"regexp"

	doerrors "github.com/iafisher/do/internal/errors"
)

// DefaultPattern matches the version assignment in setup.py. The first
// capture group holds the version.
const DefaultPattern = `version="([0-9.]+)"`

// Extract reads path and returns the version captured by pattern.
// Any failure is reported as a metadata error.
func Extract(path, pattern string) (string, error) {
	re, err := compile(pattern)
	if err != nil {
		return "", doerrors.Metadata(path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", doerrors.Metadata(path, err)
	}

	match := re.FindSubmatch(data)
	if match == nil {
		return "", doerrors.Metadata(path, fmt.Errorf("version field not found (pattern %s)", pattern))
	}

	current := string(match[1])
	if err := Validate(current); err != nil {
		return "", doerrors.Metadata(path, err)
	}
	return current, nil
}

// Rewrite replaces the version captured by the first match of pattern in
// path with version. The rest of the file is left byte-for-byte intact.
func Rewrite(path, pattern, version string) error {
	if err := Validate(version); err != nil {
		return err
	}

	re, err := compile(pattern)
	if err != nil {
		return doerrors.Metadata(path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return doerrors.Metadata(path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return doerrors.Metadata(path, err)
	}

	loc := re.FindSubmatchIndex(data)
	if loc == nil {
		return doerrors.Metadata(path, fmt.Errorf("version field not found (pattern %s)", pattern))
	}
	start, end := loc[2], loc[3]

	result := make([]byte, 0, len(data)-(end-start)+len(version))
	result = append(result, data[:start]...)
	result = append(result, version...)
	result = append(result, data[end:]...)

	if err := os.WriteFile(path, result, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// CheckPattern verifies that pattern compiles and has exactly one capture group.
func CheckPattern(pattern string) error {
	_, err := compile(pattern)
	return err
}

func compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("pattern %q must have exactly one capture group, has %d", pattern, re.NumSubexp())
	}
	return re, nil
}
