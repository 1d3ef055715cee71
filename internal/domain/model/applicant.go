package model

import (
	"errors"
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// Applicant: immutable input of a single evaluation
// ---------------------------------------------------------------------------

// Sex is the applicant's declared sex as reported on the request.
type Sex string

// SexMale is the only value with scoring significance; any other value is
// treated as non-male by the model.
const SexMale Sex = "M"

// Applicant is the validated, immutable input of one credit evaluation.
type Applicant struct {
	cuil      string
	sex       Sex
	birthDate time.Time
}

const birthDateLayout = "2006-01-02"

// NewApplicant validates raw request fields and builds an Applicant.
// The CUIL must be numeric and at least 10 digits long; the birth date must
// parse as YYYY-MM-DD. Validation failures abort before any provider call.
func NewApplicant(cuil, sex, birthDate string) (Applicant, error) {
	if cuil == "" {
		return Applicant{}, errors.New("cuil is required")
	}
	if len(cuil) < 10 {
		return Applicant{}, fmt.Errorf("cuil must have at least 10 digits, got %d", len(cuil))
	}
	for _, r := range cuil {
		if r < '0' || r > '9' {
			return Applicant{}, fmt.Errorf("cuil must be numeric: %q", cuil)
		}
	}
	if sex == "" {
		return Applicant{}, errors.New("sex is required")
	}
	if birthDate == "" {
		return Applicant{}, errors.New("birth date is required")
	}
	born, err := time.Parse(birthDateLayout, birthDate)
	if err != nil {
		return Applicant{}, fmt.Errorf("parse birth date %q: %w", birthDate, err)
	}

	return Applicant{cuil: cuil, sex: Sex(sex), birthDate: born}, nil
}

// CUIL returns the applicant's tax identifier.
func (a Applicant) CUIL() string { return a.cuil }

// Sex returns the applicant's declared sex.
func (a Applicant) Sex() Sex { return a.sex }

// BirthDate returns the parsed birth date.
func (a Applicant) BirthDate() time.Time { return a.birthDate }

// DocumentID derives the 8-digit national document number embedded in the
// CUIL: digits 3 through 10 (the CUIL wraps the DNI in a prefix and a check
// digit).
func (a Applicant) DocumentID() string {
	return a.cuil[2:10]
}

// AgeAt computes the applicant's age in whole years at the given instant,
// subtracting one year when the month/day has not yet been reached.
func (a Applicant) AgeAt(now time.Time) int {
	age := now.Year() - a.birthDate.Year()
	if now.Month() < a.birthDate.Month() ||
		(now.Month() == a.birthDate.Month() && now.Day() < a.birthDate.Day()) {
		age--
	}
	return age
}

// IsMale reports whether the male indicator feature should be set.
func (a Applicant) IsMale() bool { return a.sex == SexMale }
