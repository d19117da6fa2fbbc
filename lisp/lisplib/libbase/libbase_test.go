// NOTE:  This file uses package name suffixed with _test to avoid an import
// cycle.
package libbase_test

import (
	"testing"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/lisp/lisplib/libbase"
	"github.com/luthersystems/lispy/lisptest"
	"github.com/stretchr/testify/assert"
)

func TestPackage(t *testing.T) {
	r := &lisptest.Runner{}
	r.RunTestFile(t, "testdata/base_test.lisp")
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b  lisp.Value
		equal bool
	}{
		{lisp.Int(1), lisp.Int(1), true},
		{lisp.Int(1), lisp.Float(1), true},
		{lisp.Int(1), lisp.Int(2), false},
		{lisp.Symbol("a"), lisp.Symbol("a"), true},
		{lisp.Symbol("a"), lisp.String("a"), false},
		{lisp.List{}, lisp.List{}, true},
		{lisp.List{lisp.Int(1), lisp.List{lisp.Float(2)}}, lisp.List{lisp.Float(1), lisp.List{lisp.Int(2)}}, true},
		{lisp.List{lisp.Int(1)}, lisp.List{lisp.Int(1), lisp.Int(2)}, false},
		{lisp.List{}, lisp.Int(0), false},
	}
	for _, test := range tests {
		assert.Equal(t, test.equal, libbase.Equal(test.a, test.b), "%v = %v", test.a, test.b)
	}
}
