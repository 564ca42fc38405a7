package conv

import "testing"

func TestAppendHex(t *testing.T) {
	out := AppendHex8(nil, 0x0a)
	out = append(out, ' ')
	out = AppendHex16(out, 0xbeef)
	if string(out) != "0a beef" {
		t.Fatalf("got %q", out)
	}
}
