// Package bstest has helpers for tests that build and apply patches.
package bstest

import (
	"testing"

	"github.com/pkg/errors"
)

// Must shows a complete error stack and fails a test immediately
// if err is non-nil
func Must(t *testing.T, err error) {
	if err != nil {
		t.Helper()
		t.Errorf("%+v", errors.WithStack(err))
		t.FailNow()
	}
}
