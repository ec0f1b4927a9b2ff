package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestReleaseError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ReleaseError
		expected string
	}{
		{
			name:     "message only",
			err:      &ReleaseError{Message: "something failed"},
			expected: "something failed",
		},
		{
			name:     "with step",
			err:      &ReleaseError{Step: "push", Message: "git push failed"},
			expected: "[push] git push failed",
		},
		{
			name:     "with cause",
			err:      &ReleaseError{Message: "git push failed", Cause: errors.New("exit status 128")},
			expected: "git push failed: exit status 128",
		},
		{
			name:     "with step and cause",
			err:      &ReleaseError{Step: "build", Message: "python3 failed", Cause: errors.New("exit status 2")},
			expected: "[build] python3 failed: exit status 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestReleaseError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &ReleaseError{Message: "wrapper", Cause: cause}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() should find the cause")
	}

	errNoCause := &ReleaseError{Message: "no cause"}
	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestReleaseError_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      *ReleaseError
		expected int
	}{
		{"runtime", &ReleaseError{Kind: KindRuntime}, ExitFailure},
		{"usage", Usage("bad"), ExitFailure},
		{"version unchanged", VersionUnchanged("1.3.0"), ExitFailure},
		{"dirty repository", DirtyRepository([]string{"a.py"}), ExitFailure},
		{"declined", Declined(), ExitFailure},
		{"metadata", Metadata("setup.py", nil), ExitFailure},
		{"config", Config("bad"), ExitConfigError},
		{"tool with status", Tool("git push", 128, nil), 128},
		{"tool without status", Tool("twine", 0, errors.New("not found")), ExitToolFailure},
		{"canceled", Canceled(nil), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestDirtyRepository_KeepsPaths(t *testing.T) {
	err := DirtyRepository([]string{"a.py", "b.py"})

	if err.Kind != KindDirtyRepository {
		t.Errorf("Kind = %v, want %v", err.Kind, KindDirtyRepository)
	}
	if len(err.Paths) != 2 {
		t.Fatalf("len(Paths) = %d, want 2", len(err.Paths))
	}
	expected := "working tree has 2 uncommitted path(s); commit or stash them first"
	if err.Message != expected {
		t.Errorf("Message = %q, want %q", err.Message, expected)
	}
}

func TestTool_NoStatusNeverExitsZero(t *testing.T) {
	for _, status := range []int{0, -1} {
		err := Tool("twine upload", status, errors.New("no artifacts"))

		if err.Status != ExitToolFailure {
			t.Errorf("Tool(status=%d).Status = %d, want %d", status, err.Status, ExitToolFailure)
		}
		if got := GetExitCode(err); got == ExitSuccess {
			t.Errorf("GetExitCode(Tool(status=%d)) = %d, want non-zero", status, got)
		}
	}
}

func TestDeclined(t *testing.T) {
	err := Declined()
	if err.Error() != "aborted by operator" {
		t.Errorf("Error() = %q, want %q", err.Error(), "aborted by operator")
	}
}

func TestConfigf(t *testing.T) {
	err := Configf("field %q: %s", "remote", "is required")

	if err.Kind != KindConfig {
		t.Errorf("Kind = %v, want %v", err.Kind, KindConfig)
	}
	expected := `field "remote": is required`
	if err.Message != expected {
		t.Errorf("Message = %q, want %q", err.Message, expected)
	}
}

func TestInStep(t *testing.T) {
	t.Run("release error keeps kind and status", func(t *testing.T) {
		orig := Tool("git push", 1, nil)
		got := InStep("push", orig)

		if got.Step != "push" {
			t.Errorf("Step = %q, want %q", got.Step, "push")
		}
		if got.Kind != KindTool || got.Status != 1 {
			t.Errorf("got Kind=%v Status=%d, want tool/1", got.Kind, got.Status)
		}
		if orig.Step != "" {
			t.Error("InStep must not modify the original error")
		}
	})

	t.Run("wrapped release error is found", func(t *testing.T) {
		wrapped := fmt.Errorf("context: %w", Declined())
		got := InStep("confirm", wrapped)
		if got.Kind != KindDeclined {
			t.Errorf("Kind = %v, want %v", got.Kind, KindDeclined)
		}
	})

	t.Run("plain error becomes runtime", func(t *testing.T) {
		cause := errors.New("boom")
		got := InStep("build", cause)
		if got.Kind != KindRuntime {
			t.Errorf("Kind = %v, want %v", got.Kind, KindRuntime)
		}
		if !errors.Is(got, cause) {
			t.Error("cause should be preserved")
		}
	})
}

func TestKindOfAndIs(t *testing.T) {
	err := fmt.Errorf("publish: %w", VersionUnchanged("1.3.0"))

	if KindOf(err) != KindVersionUnchanged {
		t.Errorf("KindOf() = %v, want %v", KindOf(err), KindVersionUnchanged)
	}
	if !Is(err, KindVersionUnchanged) {
		t.Error("Is() = false, want true")
	}
	if Is(err, KindDeclined) {
		t.Error("Is(KindDeclined) = true, want false")
	}
	if KindOf(errors.New("plain")) != KindRuntime {
		t.Error("plain errors should report KindRuntime")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"ReleaseError runtime", &ReleaseError{Kind: KindRuntime, Message: "runtime"}, ExitFailure},
		{"ReleaseError config", Config("config"), ExitConfigError},
		{"wrapped tool error", fmt.Errorf("step: %w", Tool("twine upload", 3, nil)), 3},
		{"generic error", errors.New("generic"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	kinds := []ErrorKind{
		KindRuntime, KindUsage, KindVersionUnchanged, KindDirtyRepository,
		KindDeclined, KindMetadata, KindConfig, KindTool, KindCanceled,
	}
	seen := make(map[string]bool)

	for _, k := range kinds {
		s := k.String()
		if seen[s] {
			t.Errorf("duplicate ErrorKind name: %q", s)
		}
		seen[s] = true
	}
}
