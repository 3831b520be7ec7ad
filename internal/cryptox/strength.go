package cryptox

import "unicode"

// StrengthLevel rates a passphrase.
type StrengthLevel string

const (
	StrengthNone     StrengthLevel = "none"
	StrengthWeak     StrengthLevel = "weak"
	StrengthModerate StrengthLevel = "moderate"
	StrengthStrong   StrengthLevel = "strong"
)

// Strength is the result of evaluating a passphrase: a raw score, a coarse
// level, and concrete suggestions for improving it.
type Strength struct {
	Score    int
	Level    StrengthLevel
	Feedback []string
}

// EvaluatePassphraseStrength scores a passphrase on length and character
// diversity. Weak passphrases are rejected at sync setup; the feedback
// strings are meant to be shown to the user verbatim.
func EvaluatePassphraseStrength(passphrase string) Strength {
	if passphrase == "" {
		return Strength{Level: StrengthNone, Feedback: []string{"Enter a passphrase"}}
	}

	var hasLower, hasUpper, hasDigit, hasOther bool
	for _, r := range passphrase {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasOther = true
		}
	}

	score := 0
	if len(passphrase) >= 8 {
		score++
	}
	if len(passphrase) >= 12 {
		score++
	}
	if len(passphrase) >= 16 {
		score++
	}
	for _, ok := range []bool{hasLower, hasUpper, hasDigit, hasOther} {
		if ok {
			score++
		}
	}

	var feedback []string
	if len(passphrase) < 12 {
		feedback = append(feedback, "Use at least 12 characters")
	}
	if !hasUpper {
		feedback = append(feedback, "Add uppercase letters")
	}
	if !hasDigit {
		feedback = append(feedback, "Add numbers")
	}
	if !hasOther {
		feedback = append(feedback, "Add special characters")
	}

	level := StrengthWeak
	switch {
	case score >= 6:
		level = StrengthStrong
	case score >= 4:
		level = StrengthModerate
	}

	return Strength{Score: score, Level: level, Feedback: feedback}
}
