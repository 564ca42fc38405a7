package calendar

// ToBCD encodes 0..99 as two packed decimal digits.
func ToBCD(b uint8) uint8 { return (b/10)<<4 | b%10 }

// FromBCD decodes two packed decimal digits.
func FromBCD(b uint8) uint8 { return (b>>4)*10 + b&0x0F }

// validBCD reports whether both nibbles are decimal digits.
func validBCD(b uint8) bool { return b>>4 <= 9 && b&0x0F <= 9 }
