// Package cpf validates Brazilian individual taxpayer identifiers (CPF).
//
// Validation is a pure function of the digits in the input. Punctuation,
// spaces and letters are discarded before any rule is applied, and an input
// without digits is reported as valid so that presence can be enforced by a
// separate "required" rule.
package cpf

const length = 11

// Reason explains why an identifier was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonWrongLength
	ReasonRepeatedDigits
	ReasonChecksumMismatch
)

// String returns a stable, lowercase name for the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonWrongLength:
		return "wrong_length"
	case ReasonRepeatedDigits:
		return "repeated_digits"
	case ReasonChecksumMismatch:
		return "checksum_mismatch"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of a validation. Reason is ReasonNone when Valid is true.
type Verdict struct {
	Valid  bool
	Reason Reason
}

func invalid(r Reason) Verdict { return Verdict{Reason: r} }

// Digits returns the ASCII decimal digits of raw in their original order.
func Digits(raw string) string {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			out = append(out, c)
		}
	}
	return string(out)
}

// Check validates raw and reports the verdict. It never panics.
func Check(raw string) Verdict {
	d := Digits(raw)
	if d == "" {
		return Verdict{Valid: true}
	}
	if len(d) != length {
		return invalid(ReasonWrongLength)
	}
	if repeated(d) {
		return invalid(ReasonRepeatedDigits)
	}
	if checkDigit(d, 9) != int(d[9]-'0') || checkDigit(d, 10) != int(d[10]-'0') {
		return invalid(ReasonChecksumMismatch)
	}
	return Verdict{Valid: true}
}

// CheckOptional treats a nil value as not yet provided, which is valid.
func CheckOptional(raw *string) Verdict {
	if raw == nil {
		return Verdict{Valid: true}
	}
	return Check(*raw)
}

// IsValid reports whether raw is an acceptable CPF (or empty).
func IsValid(raw string) bool {
	return Check(raw).Valid
}

// checkDigit computes the check digit over the first n digits, weighting
// them n+1 down to 2.
func checkDigit(d string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(d[i]-'0') * (n + 1 - i)
	}
	r := sum * 10 % 11
	if r == 10 || r == 11 {
		r = 0
	}
	return r
}

func repeated(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
