package errcode

// Fatal aborts the image with a wiring defect. There is no recovery path on
// the device; the panic handler resets the chip.
func Fatal(op string, c Code, msg string) {
	panic(&E{C: c, Op: op, Msg: msg})
}

// Recovered converts a recovered panic value into the *E raised by Fatal.
// It returns false for anything else.
func Recovered(r any) (*E, bool) {
	e, ok := r.(*E)
	return e, ok
}

// Describe renders a recovered panic for the console, prefixed with the
// kind of the code when r came from Fatal.
func Describe(r any) string {
	if e, ok := Recovered(r); ok {
		return KindOf(e.C).String() + ": " + e.Error()
	}
	if err, ok := r.(error); ok {
		return "panic: " + err.Error()
	}
	if s, ok := r.(string); ok {
		return "panic: " + s
	}
	return "panic"
}
