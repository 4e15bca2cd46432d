package model

import (
	"errors"
	"maps"
	"slices"
	"strconv"
	"strings"
)

const (
	FieldAmount      = "amount"
	FieldCurrency    = "currency"
	FieldDescription = "description"
	FieldCSRF        = "csrf_token"
)

// PayForm is the raw customer input, kept as typed so the form can be
// rendered back with the customer's values.
type PayForm struct {
	Amount      string
	Currency    string
	Description string
}

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := slices.Sorted(maps.Keys(e.Fields))
	return "invalid form: " + strings.Join(names, ", ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

// Validate returns an Order ready to be stored. CreatedDate and ID are left
// for the caller and the store.
func (f PayForm) Validate(currencies *CurrencyTable) (Order, error) {
	verr := &ValidationError{}

	amount, err := strconv.ParseInt(strings.TrimSpace(f.Amount), 10, 64)
	switch {
	case strings.TrimSpace(f.Amount) == "":
		verr.add(FieldAmount, "This field is required.")
	case err != nil:
		verr.add(FieldAmount, "Not a valid integer value.")
	case amount <= 0:
		verr.add(FieldAmount, "Amount must be a positive number.")
	}

	if f.Currency == "" {
		verr.add(FieldCurrency, "This field is required.")
	} else if _, err := currencies.Lookup(f.Currency); err != nil {
		verr.add(FieldCurrency, "Not a valid choice.")
	}

	if strings.TrimSpace(f.Description) == "" {
		verr.add(FieldDescription, "This field is required.")
	}

	if len(verr.Fields) > 0 {
		return Order{}, verr
	}

	return Order{
		Amount:      amount,
		Currency:    f.Currency,
		Description: f.Description,
	}, nil
}

func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}
