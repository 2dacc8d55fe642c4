package domain

import (
	"errors"
	"strings"
)

var (
	ErrNoCompanions       = errors.New("at least one applicant is required")
	ErrTooManyCompanions  = errors.New("a record holds at most four people")
	ErrMissingRequired    = errors.New("name, birth date and product are required")
	ErrInvalidPhone       = errors.New("phone number parts must be four digits")
	ErrCoupleNeedsPartner = errors.New("the couple package requires partner details")
	ErrMissingDepositor   = errors.New("depositor name is required when the payer differs")
)

// ValidateCompanions checks a submission before any record is created.
// The first failing rule is returned; nothing is persisted on failure.
func ValidateCompanions(companions []Companion) error {
	if len(companions) == 0 {
		return ErrNoCompanions
	}
	if len(companions) > MaxCompanions {
		return ErrTooManyCompanions
	}

	main := companions[0]
	if main.PayerDifferent || main.DepositorDifferent {
		if strings.TrimSpace(main.PayerName) == "" && strings.TrimSpace(main.DepositorName) == "" {
			return ErrMissingDepositor
		}
	}

	hasCouple := false
	for _, c := range companions {
		if c.Product == ProductCouple {
			hasCouple = true
		}
		if c.Product == "" {
			return ErrMissingRequired
		}
		if len(c.Phone2) != 4 || len(c.Phone3) != 4 || !digitsOnly(c.Phone2) || !digitsOnly(c.Phone3) {
			return ErrInvalidPhone
		}
	}
	if hasCouple && len(companions) < 2 {
		return ErrCoupleNeedsPartner
	}

	if main.Name == "" || main.BirthYear == "" || main.BirthMonth == "" || main.BirthDay == "" {
		return ErrMissingRequired
	}

	return nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
