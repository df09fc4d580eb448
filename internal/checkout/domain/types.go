package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Address is where the order goes. FullName, Phone, District and Area are
// required; Street and Landmark are free-text extras.
type Address struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	District string `json:"district"`
	Area     string `json:"area"`
	Street   string `json:"street,omitempty"`
	Landmark string `json:"landmark,omitempty"`
}

// Validate checks the required fields and the phone format, reporting
// every problem at once so a form can highlight all of them.
func (a Address) Validate() error {
	var fields []string
	if strings.TrimSpace(a.FullName) == "" {
		fields = append(fields, "full_name")
	}
	if strings.TrimSpace(a.Phone) == "" {
		fields = append(fields, "phone")
	} else if !ValidPhone(a.Phone) {
		fields = append(fields, "phone")
	}
	if strings.TrimSpace(a.District) == "" {
		fields = append(fields, "district")
	}
	if strings.TrimSpace(a.Area) == "" {
		fields = append(fields, "area")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields, Reason: "missing or invalid"}
	}
	return nil
}

// ValidationError names the field(s) that blocked a checkout step. It
// never moves the state machine.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", strings.Join(e.Fields, ", "), e.Reason)
}

var (
	// ErrInvalidPhone rejects a mobile-money number that fails format
	// validation.
	ErrInvalidPhone = errors.New("invalid mobile number")

	// ErrWrongNetwork rejects a well-formed mobile-money number on the
	// wrong telecom for the chosen provider. Kept distinct from
	// ErrInvalidPhone so the UI can say which problem to fix.
	ErrWrongNetwork = errors.New("mobile number is on a different network than the selected provider")
)
