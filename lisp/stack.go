package lisp

import (
	"fmt"
	"io"
)

// CallStack is a procedure call stack.  CallStack also tracks the depth of
// evaluation so that runaway recursion is reported as an error before the
// native stack is exhausted.
type CallStack struct {
	Frames    []CallFrame
	Depth     int
	MaxHeight int // maximum evaluation depth; no limit when zero
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name string
	Args int
}

// Copy creates a copy of the current stack so that it can be attached to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, Depth: s.Depth, MaxHeight: s.MaxHeight}
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Enter increments the evaluation depth.  Enter returns a StackOverflow error
// and leaves the depth unchanged if the maximum height would be exceeded.
func (s *CallStack) Enter() error {
	if s.MaxHeight > 0 && s.Depth >= s.MaxHeight {
		err := Errorf(StackOverflow, "maximum evaluation depth exceeded: %d", s.MaxHeight)
		err.Stack = s.Copy()
		return err
	}
	s.Depth++
	return nil
}

// Leave decrements the evaluation depth.
func (s *CallStack) Leave() {
	if s.Depth <= 0 {
		panic("leave called at depth zero")
	}
	s.Depth--
}

// Push pushes a new stack frame onto s.
func (s *CallStack) Push(name string, nargs int) {
	s.Frames = append(s.Frames, CallFrame{Name: name, Args: nargs})
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// Reset clears all frames and the evaluation depth.  Reset is used to recover
// a runtime after a panic unwound through the evaluator.
func (s *CallStack) Reset() {
	s.Frames = nil
	s.Depth = 0
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		_n, err := fmt.Fprintf(w, "%sheight %d: %s [%d args]\n", indent, i, f.Name, f.Args)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
