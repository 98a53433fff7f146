package validation

import (
	"fmt"
	"strings"
)

// CheckDigit computes the modulo-11 check character for a numeric national
// identity number body. Digits are scanned right to left with multipliers
// cycling 2,3,4,5,6,7; the result is 11-(sum mod 11), mapped to '0' for 11
// and 'K' for 10, otherwise the digit itself.
func CheckDigit(body string) (byte, error) {
	if body == "" {
		return 0, fmt.Errorf("empty national ID body")
	}

	sum := 0
	multiplier := 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("national ID body must be numeric, got %q", body)
		}
		sum += int(c-'0') * multiplier
		multiplier++
		if multiplier > 7 {
			multiplier = 2
		}
	}

	switch r := 11 - (sum % 11); r {
	case 11:
		return '0', nil
	case 10:
		return 'K', nil
	default:
		return byte('0' + r), nil
	}
}

// ValidateNationalID checks the format and check character of a national
// identity number written as "body-check". The check character comparison
// is case-insensitive.
func ValidateNationalID(id string) error {
	if !CompiledPatterns.NationalID.MatchString(id) {
		return fmt.Errorf("national ID must match body-check format with a 7-8 digit body")
	}

	dash := strings.LastIndexByte(id, '-')
	body := id[:dash]
	supplied := strings.ToUpper(id[dash+1:])

	expected, err := CheckDigit(body)
	if err != nil {
		return err
	}
	if supplied[0] != expected {
		return fmt.Errorf("national ID check character mismatch")
	}
	return nil
}
