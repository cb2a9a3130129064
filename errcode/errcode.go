package errcode

// Code is a stable error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	Busy          Code = "busy"
	InvalidParams Code = "invalid_params"
	Timeout       Code = "timeout"

	// Bring-up wiring defects. Always fatal.
	AlreadyInitialized Code = "already_initialized"
	NotInitialized     Code = "not_initialized"
	AlreadyClaimed     Code = "already_claimed"
	ResourceTaken      Code = "resource_taken"
	OverRelease        Code = "over_release"

	// Reference counter saturation. Fatal.
	CapacityExceeded Code = "capacity_exceeded"

	Error Code = "error" // generic fallback
)

// Kind groups codes by how the firmware reacts to them.
type Kind uint8

const (
	KindOther       Kind = iota
	KindProgramming      // fixable only by changing code
	KindCapacity         // counter saturation
	KindTimeout          // produced by the timer layer, propagated opaquely
)

func (k Kind) String() string {
	switch k {
	case KindProgramming:
		return "programming"
	case KindCapacity:
		return "capacity"
	case KindTimeout:
		return "timeout"
	default:
		return "other"
	}
}

// KindOf classifies a code.
func KindOf(c Code) Kind {
	switch c {
	case AlreadyInitialized, NotInitialized, AlreadyClaimed, ResourceTaken, OverRelease:
		return KindProgramming
	case CapacityExceeded:
		return KindCapacity
	case Timeout:
		return KindTimeout
	}
	return KindOther
}

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
