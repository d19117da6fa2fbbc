package lisp

import "io"

// Config is a function that configures a root environment or its runtime.
type Config func(env *Env) error

// Loader is a function that binds names in an environment, typically a table
// of primitives.
type Loader func(env *Env) error

// InitializeUserEnv applies each of config to env, in order.
func InitializeUserEnv(env *Env, config ...Config) error {
	for _, fn := range config {
		err := fn(env)
		if err != nil {
			return err
		}
	}
	return nil
}

// WithMaximumDepth returns a Config that will prevent an environment from
// evaluating expressions nested deeper than n.  A value of zero disables the
// limit, leaving deep recursion to exhaust the native stack.
func WithMaximumDepth(n int) Config {
	return func(env *Env) error {
		env.Runtime.Stack.MaxHeight = n
		return nil
	}
}

// WithLoader returns a Config that executes fn against the root environment.
func WithLoader(fn Loader) Config {
	return func(env *Env) error {
		return fn(env.Root())
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *Env) error {
		env.Runtime.Reader = r
		return nil
	}
}

// WithStdout returns a Config that makes environments write program output to
// w instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *Env) error {
		env.Runtime.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *Env) error {
		env.Runtime.Stderr = w
		return nil
	}
}
