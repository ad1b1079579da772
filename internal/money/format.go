// Package money formats whole-FCFA amounts for display.
package money

import (
	"strconv"
	"strings"
)

// Currency is the suffix appended by FormatFCFA.
const Currency = "FCFA"

const groupSeparator = ' '

// Format groups the digits of amount in threes from the right, separated by a
// space. Negative amounts keep their sign in front of the first group.
func Format(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	sign := ""
	if amount < 0 {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	b.Grow(len(sign) + len(digits) + len(digits)/3)
	b.WriteString(sign)
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(groupSeparator)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatFCFA formats amount and appends the currency suffix.
func FormatFCFA(amount int64) string {
	return Format(amount) + " " + Currency
}
