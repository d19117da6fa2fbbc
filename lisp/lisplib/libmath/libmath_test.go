package libmath_test

import (
	"testing"

	"github.com/luthersystems/lispy/lisptest"
)

func TestPackage(t *testing.T) {
	r := &lisptest.Runner{}
	r.RunTestFile(t, "testdata/math_test.lisp")
}
