// Package lisplib is used to conveniently load the standard library into a
// lisp environment.
package lisplib

import (
	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/lisp/lisplib/libbase"
	"github.com/luthersystems/lispy/lisp/lisplib/libmath"
)

// LoadLibrary binds the standard primitives in env.
func LoadLibrary(env *lisp.Env) error {
	err := libbase.LoadPackage(env)
	if err != nil {
		return err
	}
	return libmath.LoadPackage(env)
}
