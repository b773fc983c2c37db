package trajcore

import (
	"fmt"
	"reflect"
	"runtime"

	kitlog "github.com/go-kit/kit/log"
)

// Code is the core's stable integer error enumeration. Callers may test
// `code >= RangeError` to recognise a benign termination.
type Code int

// NoError is the zero value: no failure occurred.
const (
	NoError Code = iota
	InputError
	ValueError
	KeyError
	IndexError
	MemoryError
	RuntimeError
	ZeroFindingError
	// RangeError is the sentinel above which every RangeError_* variant sits.
	RangeError
	RangeErrorMinimumVelocity
	RangeErrorMaximumDrop
	RangeErrorMinimumAltitude
	RangeErrorInvalidParameter
)

func (c Code) String() string {
	switch c {
	case NoError:
		return "NoError"
	case InputError:
		return "InputError"
	case ValueError:
		return "ValueError"
	case KeyError:
		return "KeyError"
	case IndexError:
		return "IndexError"
	case MemoryError:
		return "MemoryError"
	case RuntimeError:
		return "RuntimeError"
	case ZeroFindingError:
		return "ZeroFindingError"
	case RangeError:
		return "RangeError"
	case RangeErrorMinimumVelocity:
		return "RangeError_MinimumVelocity"
	case RangeErrorMaximumDrop:
		return "RangeError_MaximumDrop"
	case RangeErrorMinimumAltitude:
		return "RangeError_MinimumAltitude"
	case RangeErrorInvalidParameter:
		return "RangeError_InvalidParameter"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// IsRange reports whether c is one of the benign RangeError_* terminations.
func (c Code) IsRange() bool {
	return c >= RangeError
}

// frame is one diagnostic entry pushed onto an ErrorStack.
type frame struct {
	code Code
	src  string
	fn   string
	file string
	line int
	msg  string
}

// ErrorStack is a bounded-depth ring of diagnostic frames, populated by leaf
// routines on first failure and consulted by Engine operations to decide
// whether to recover locally or surface the failure to the caller.
//
// It is cleared at the start of every public Engine operation.
const errorStackDepth = 16

type ErrorStack struct {
	frames [errorStackDepth]frame
	n      int // number of frames pushed since last Reset (may exceed depth)
}

// Reset clears the stack. Called at the start of each public operation.
func (e *ErrorStack) Reset() {
	e.n = 0
}

// Push records a diagnostic frame, formatting msg the way the teacher's
// panic/log call sites do (printf-style varargs folded into one string).
// If the stack is already at capacity the oldest frame is overwritten
// (last-wins ring behaviour).
func (e *ErrorStack) Push(code Code, src string, format string, args ...interface{}) {
	pc, file, line, ok := runtime.Caller(1)
	fn := "unknown"
	if ok {
		if f := runtime.FuncForPC(pc); f != nil {
			fn = f.Name()
		}
	}
	idx := e.n % errorStackDepth
	e.frames[idx] = frame{
		code: code,
		src:  src,
		fn:   fn,
		file: file,
		line: line,
		msg:  fmt.Sprintf(format, args...),
	}
	e.n++
}

// Empty reports whether nothing has been pushed since the last Reset.
func (e *ErrorStack) Empty() bool {
	return e.n == 0
}

// Len returns the number of live frames (capped at errorStackDepth).
func (e *ErrorStack) Len() int {
	if e.n > errorStackDepth {
		return errorStackDepth
	}
	return e.n
}

// Last returns the most recently pushed frame's code and message, or
// NoError/"" if the stack is empty.
func (e *ErrorStack) Last() (Code, string) {
	if e.Empty() {
		return NoError, ""
	}
	f := e.frames[(e.n-1)%errorStackDepth]
	return f.code, f.msg
}

// LogTo writes every live frame to logger, most recent first, mirroring the
// "level/subsys/..." structured pairs the teacher's Spacecraft.LogStatus
// emits.
func (e *ErrorStack) LogTo(logger kitlog.Logger) {
	n := e.Len()
	for i := 0; i < n; i++ {
		idx := (e.n - 1 - i) % errorStackDepth
		f := e.frames[idx]
		logger.Log("level", "error", "subsys", f.src, "code", f.code.String(), "func", f.fn, "file", f.file, "line", f.line, "message", f.msg)
	}
}

// requireNonNil aborts (after logging) when ptr is nil. Reserved for
// invariants that cannot be made false by API misuse, per spec.md §7 — a
// ShotProps reaching the engine's internal physics loop without the
// required collaborators wired up, never user input. Uses reflect rather
// than a bare `ptr == nil` because ptr typically arrives as a concrete
// pointer (e.g. *DragCurve) boxed into the interface{} parameter, and a
// nil concrete pointer boxed that way does not compare equal to the bare
// nil interface.
func requireNonNil(logger kitlog.Logger, ptr interface{}, what string) {
	isNil := ptr == nil
	if !isNil {
		switch v := reflect.ValueOf(ptr); v.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
			isNil = v.IsNil()
		}
	}
	if isNil {
		if logger != nil {
			logger.Log("level", "critical", "subsys", "trajcore", "message", fmt.Sprintf("%s must not be nil", what))
		}
		panic(fmt.Sprintf("trajcore: %s must not be nil", what))
	}
}
