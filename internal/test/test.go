// Package test contains assertion helpers shared by package tests.
// Every failed check stops the test.
package test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ava12/grammatic"
)

func Assert(t *testing.T, cond bool, message string, params ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(message, params...)
	}
}

// ExpectEqual compares values with cmp.Diff and reports the difference.
func ExpectEqual[T any](t *testing.T, expected, got T) {
	t.Helper()
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("unexpected value (-expected +got):\n%s", diff)
	}
}

func ExpectBool(t *testing.T, expected, got bool) {
	t.Helper()
	if expected != got {
		t.Fatalf("expecting %t, got %t", expected, got)
	}
}

func ExpectInt(t *testing.T, expected, got int) {
	t.Helper()
	if expected != got {
		t.Fatalf("expecting %d, got %d", expected, got)
	}
}

func ExpectString(t *testing.T, expected, got string) {
	t.Helper()
	if expected != got {
		t.Fatalf("expecting %q, got %q", expected, got)
	}
}

// ExpectErrorCode checks that e or an error it wraps is *grammatic.Error with expected code.
func ExpectErrorCode(t *testing.T, expected int, e error) {
	t.Helper()
	if e == nil {
		t.Fatalf("expecting error code %d, got success", expected)
	}
	if code := grammatic.ErrorCode(e); code != expected {
		t.Fatalf("expecting error code %d, got %d (%v)", expected, code, e)
	}
}

func ExpectNoError(t *testing.T, e error) {
	t.Helper()
	if e != nil {
		t.Fatalf("unexpected error: %v", e)
	}
}
