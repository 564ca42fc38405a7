//go:build tinygo

package fmtx

import (
	"io"

	"github.com/omzlo/pivoyager-firmware/x/strconvx"
)

// DefaultOutput is used by Print/Printf. The platform points it at the
// console ring during bring-up.
var DefaultOutput io.Writer = discard{}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

type stringer interface{ String() string }

func Sprintf(format string, a ...any) string { return string(Appendf(nil, format, a...)) }

func Printf(format string, a ...any) (int, error) {
	return DefaultOutput.Write(Appendf(nil, format, a...))
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	return w.Write(Appendf(nil, format, a...))
}

// Appendf formats into b, so callers with a scratch buffer avoid
// allocating on every log line.
func Appendf(b []byte, format string, a ...any) []byte {
	p := printer{buf: b}
	p.format(format, a)
	return p.buf
}

func Errorf(format string, a ...any) error { return &stringError{Sprintf(format, a...)} }

func Sprint(a ...any) string {
	var p printer
	for i, v := range a {
		// Operands are spaced only when neither side is a string.
		if i > 0 && !isString(a[i-1]) && !isString(v) {
			p.buf = append(p.buf, ' ')
		}
		p.value(v, 'v')
	}
	return string(p.buf)
}

func Fprint(w io.Writer, a ...any) (int, error) { return w.Write([]byte(Sprint(a...))) }

func Print(a ...any) (int, error) { return Fprint(DefaultOutput, a...) }

type stringError struct{ s string }

func (e *stringError) Error() string { return e.s }

// Supported: %s %q %v %d %x %X %c %t %% with width, '0' flag and precision
// on strings. Floats are not supported. Anything else is copied through
// literally.
type printer struct {
	buf   []byte
	width int
	zero  bool
}

func (p *printer) pad(s string) {
	fill := byte(' ')
	if p.zero {
		fill = '0'
	}
	n := p.width - len(s)
	if n > 0 && fill == '0' && len(s) > 0 && s[0] == '-' {
		p.buf = append(p.buf, '-')
		s = s[1:]
	}
	for ; n > 0; n-- {
		p.buf = append(p.buf, fill)
	}
	p.buf = append(p.buf, s...)
}

func (p *printer) format(format string, args []any) {
	ai := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			p.buf = append(p.buf, c)
			continue
		}
		i++
		if i >= len(format) {
			p.buf = append(p.buf, '%')
			return
		}
		if format[i] == '%' {
			p.buf = append(p.buf, '%')
			continue
		}
		p.zero, p.width = false, 0
		if format[i] == '0' {
			p.zero = true
			i++
		}
		i = parseNum(format, i, &p.width)
		prec := -1
		if i < len(format) && format[i] == '.' {
			prec = 0
			i = parseNum(format, i+1, &prec)
		}
		if i >= len(format) {
			return
		}
		verb := format[i]
		if ai >= len(args) {
			p.buf = append(p.buf, "%!"...)
			p.buf = append(p.buf, verb)
			p.buf = append(p.buf, "(MISSING)"...)
			continue
		}
		arg := args[ai]
		ai++

		switch verb {
		case 's', 'q':
			s, ok := text(arg)
			if !ok {
				p.value(arg, 'v')
				continue
			}
			if prec >= 0 && prec < len(s) {
				s = s[:prec]
			}
			if verb == 'q' {
				s = quote(s)
			}
			p.zero = false
			p.pad(s)
		case 'd':
			if u, ok := unsigned(arg); ok {
				p.pad(strconvx.FormatUint(u, 10))
			} else {
				p.pad(strconvx.FormatInt(signed(arg), 10))
			}
		case 'x', 'X':
			u, ok := unsigned(arg)
			if !ok {
				u = uint64(signed(arg))
			}
			h := strconvx.FormatUint(u, 16)
			if verb == 'X' {
				h = upper(h)
			}
			p.pad(h)
		case 'c':
			p.buf = append(p.buf, byte(signed(arg)))
		case 't':
			b, _ := arg.(bool)
			p.pad(boolText(b))
		case 'v':
			p.value(arg, 'v')
		default:
			p.buf = append(p.buf, '%', verb)
		}
	}
}

func (p *printer) value(v any, verb byte) {
	if s, ok := text(v); ok {
		p.buf = append(p.buf, s...)
		return
	}
	switch x := v.(type) {
	case bool:
		p.buf = append(p.buf, boolText(x)...)
	case nil:
		p.buf = append(p.buf, "<nil>"...)
	default:
		if u, ok := unsigned(v); ok {
			p.buf = strconvx.AppendUint(p.buf, u, 10)
			return
		}
		if n, ok := isSigned(v); ok {
			p.buf = strconvx.AppendInt(p.buf, n, 10)
			return
		}
		p.buf = append(p.buf, "<?>"...)
	}
}

func text(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case error:
		return x.Error(), true
	case stringer:
		return x.String(), true
	}
	return "", false
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func unsigned(v any) (uint64, bool) {
	switch t := v.(type) {
	case uint:
		return uint64(t), true
	case uint8:
		return uint64(t), true
	case uint16:
		return uint64(t), true
	case uint32:
		return uint64(t), true
	case uint64:
		return t, true
	case uintptr:
		return uint64(t), true
	}
	return 0, false
}

func isSigned(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	}
	return 0, false
}

func signed(v any) int64 {
	if n, ok := isSigned(v); ok {
		return n
	}
	u, _ := unsigned(v)
	return int64(u)
}

func upper(h string) string {
	b := []byte(h)
	for i, c := range b {
		if 'a' <= c && c <= 'f' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func parseNum(s string, i int, out *int) int {
	n, start := 0, i
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i > start {
		*out = n
	}
	return i
}

func quote(s string) string {
	out := []byte{'"'}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '"':
			out = append(out, '\\', c)
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\t':
			out = append(out, '\\', 't')
		default:
			out = append(out, c)
		}
	}
	return string(append(out, '"'))
}
