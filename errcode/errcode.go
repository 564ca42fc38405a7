package errcode

// Code is a stable, bus-facing error identifier. It is what the device
// writes into the ERR register: zero for success, a distinct negative value
// per failure. Code implements error.
type Code int8

func (c Code) Error() string {
	switch c {
	case OK:
		return "ok"
	case ProgramError:
		return "program_error"
	case WriteProtect:
		return "write_protect"
	case Unexpected:
		return "unexpected_status"
	case AddressRange:
		return "address_range"
	case CalendarWriteTimeout:
		return "calendar_write_timeout"
	case UnknownCommand:
		return "unknown_command"
	}
	return "error"
}

// Canonical codes. Flash codes match the bootloader's historical values so
// existing host tools keep decoding them.
const (
	OK Code = 0

	// Flash operations.
	ProgramError Code = -1
	WriteProtect Code = -2
	Unexpected   Code = -3 // also used where the hardware gives no answer
	AddressRange Code = -4

	// Calendar writes requested at runtime.
	CalendarWriteTimeout Code = -5

	UnknownCommand Code = -100

	Error Code = -127 // generic fallback
)

// Clock start-up codes returned by RTC initialisation. They share values
// with the flash codes but live on a different path (never written to ERR).
const (
	OscillatorTimeout   Code = -1
	CalendarInitTimeout Code = -2
)

// E keeps context and a cause alongside a code, for logs.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := e.C.Error()
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

// Err turns a code into an error, mapping OK to nil.
func Err(c Code) error {
	if c == OK {
		return nil
	}
	return c
}
