package activity

import (
	"strings"
	"time"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/numparse"
	"atelierdesk/internal/core/types"
	"atelierdesk/internal/core/validate"
)

// Form is the submitted journal payload. Validation dispatches on the
// Type discriminator; each type has its own required-field set.
type Form struct {
	Date string `json:"date"`
	Type string `json:"type"`

	// Product selection. All-or-nothing: when any of the four is given,
	// all four must be.
	ProductID   string `json:"productId"`
	ProductType string `json:"productType"`
	ModelID     string `json:"modelId"`
	ColorisID   string `json:"colorisId"`

	Quantity string `json:"quantity"`
	Amount   string `json:"amount"`

	// Stock correction deltas, positive number strings
	AddToStock      string `json:"addToStock"`
	ReduceFromStock string `json:"reduceFromStock"`

	Note string `json:"note"`
}

func (f *Form) hasProductSelection() bool {
	return strings.TrimSpace(f.ProductID) != "" ||
		strings.TrimSpace(f.ProductType) != "" ||
		strings.TrimSpace(f.ModelID) != "" ||
		strings.TrimSpace(f.ColorisID) != ""
}

func (f *Form) hasFullProductSelection() bool {
	return strings.TrimSpace(f.ProductID) != "" &&
		strings.TrimSpace(f.ProductType) != "" &&
		strings.TrimSpace(f.ModelID) != "" &&
		strings.TrimSpace(f.ColorisID) != ""
}

// validateSelection enforces the all-or-nothing product selection rule.
func (f *Form) validateSelection(required bool) error {
	if required && !f.hasFullProductSelection() {
		return apperror.NewValidation("product selection is required").
			WithDetail("field", "productId").
			WithDetail("type", f.Type)
	}
	if !required && f.hasProductSelection() && !f.hasFullProductSelection() {
		return apperror.NewValidation("product selection must be complete").
			WithDetail("field", "productId")
	}
	return nil
}

// Validate checks the per-type rules and returns the first violation.
func (f *Form) Validate() error {
	if strings.TrimSpace(f.Date) == "" {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	if !validate.IsValidISO8601(f.Date) {
		return apperror.NewValidation("date must be a valid ISO 8601 timestamp").
			WithDetail("field", "date").
			WithDetail("value", f.Date)
	}

	if !IsValidType(Type(f.Type)) {
		return apperror.NewValidation("invalid activity type").
			WithDetail("field", "type").
			WithDetail("value", f.Type)
	}

	switch Type(f.Type) {
	case TypeCreation:
		if err := f.validateSelection(true); err != nil {
			return err
		}
		q, err := numparse.ParseValidNumber(f.Quantity, "quantity")
		if err != nil {
			return err
		}
		if q <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "quantity").
				WithDetail("value", f.Quantity)
		}
		// Amount carries the convention value 0, but it must still be a
		// well-formed non-negative number.
		amount, err := numparse.ParseValidNumber(f.Amount, "amount")
		if err != nil {
			return err
		}
		if amount < 0 {
			return apperror.NewValidation("amount cannot be negative").
				WithDetail("field", "amount").
				WithDetail("value", f.Amount)
		}

	case TypeSale:
		if err := f.validateSelection(true); err != nil {
			return err
		}
		// Quantity is entered positive; the sign flip to negative
		// happens at submission, not here.
		q, err := numparse.ParseValidNumber(f.Quantity, "quantity")
		if err != nil {
			return err
		}
		if q <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "quantity").
				WithDetail("value", f.Quantity)
		}
		amount, err := numparse.ParseValidNumber(f.Amount, "amount")
		if err != nil {
			return err
		}
		if amount <= 0 {
			return apperror.NewValidation("amount must be positive").
				WithDetail("field", "amount").
				WithDetail("value", f.Amount)
		}

	case TypeStockCorrection:
		if err := f.validateSelection(true); err != nil {
			return err
		}
		add := strings.TrimSpace(f.AddToStock)
		reduce := strings.TrimSpace(f.ReduceFromStock)
		if add == "" && reduce == "" {
			return apperror.NewValidation("at least one of addToStock or reduceFromStock is required").
				WithDetail("field", "addToStock")
		}
		// Each present value must independently be a positive number.
		if add != "" && !numparse.IsValidPositiveNumberString(add) {
			return apperror.NewValidation("addToStock must be a positive number").
				WithDetail("field", "addToStock").
				WithDetail("value", f.AddToStock)
		}
		if reduce != "" && !numparse.IsValidPositiveNumberString(reduce) {
			return apperror.NewValidation("reduceFromStock must be a positive number").
				WithDetail("field", "reduceFromStock").
				WithDetail("value", f.ReduceFromStock)
		}

	case TypeOther:
		if err := f.validateSelection(false); err != nil {
			return err
		}
		// Quantity may carry either sign, but must be well formed when given.
		if strings.TrimSpace(f.Quantity) != "" {
			if _, err := numparse.ParseValidNumber(f.Quantity, "quantity"); err != nil {
				return err
			}
		}
		amount, err := numparse.ParseValidNumber(f.Amount, "amount")
		if err != nil {
			return err
		}
		if amount <= 0 {
			return apperror.NewValidation("amount must be positive").
				WithDetail("field", "amount").
				WithDetail("value", f.Amount)
		}
	}

	return nil
}

// ToActivity builds an Activity from a validated form, applying the
// submission-time conventions: sale quantities are flipped negative and
// stock corrections net their two deltas into one signed quantity.
func (f *Form) ToActivity() (*Activity, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	date, err := time.Parse(time.RFC3339, f.Date)
	if err != nil {
		// IsValidISO8601 accepts bare "YYYY-MM-DDTHH:MM:SS" too.
		date, err = time.Parse("2006-01-02T15:04:05", f.Date)
		if err != nil {
			return nil, apperror.NewValidation("date must be a valid ISO 8601 timestamp").
				WithDetail("field", "date").
				WithDetail("value", f.Date).
				WithCause(err)
		}
	}

	a := NewActivity(date.UTC(), Type(f.Type))

	if f.hasFullProductSelection() {
		productID, err := id.Parse(strings.TrimSpace(f.ProductID))
		if err != nil {
			return nil, apperror.NewValidation("product id is malformed").
				WithDetail("field", "productId").
				WithDetail("value", f.ProductID).
				WithCause(err)
		}
		a.ProductID = &productID
	}

	switch a.Type {
	case TypeCreation:
		q, err := types.ParseQuantity(f.Quantity)
		if err != nil {
			return nil, apperror.NewParseError("quantity", f.Quantity).WithCause(err)
		}
		a.Quantity = q
		a.Amount = types.Zero()

	case TypeSale:
		q, err := types.ParseQuantity(f.Quantity)
		if err != nil {
			return nil, apperror.NewParseError("quantity", f.Quantity).WithCause(err)
		}
		a.Quantity = q.Neg()
		amount, err := types.NewMoneyFromString(strings.TrimSpace(f.Amount))
		if err != nil {
			return nil, apperror.NewParseError("amount", f.Amount).WithCause(err)
		}
		a.Amount = amount

	case TypeStockCorrection:
		var add, reduce types.Quantity
		if strings.TrimSpace(f.AddToStock) != "" {
			add, err = types.ParseQuantity(f.AddToStock)
			if err != nil {
				return nil, apperror.NewParseError("addToStock", f.AddToStock).WithCause(err)
			}
		}
		if strings.TrimSpace(f.ReduceFromStock) != "" {
			reduce, err = types.ParseQuantity(f.ReduceFromStock)
			if err != nil {
				return nil, apperror.NewParseError("reduceFromStock", f.ReduceFromStock).WithCause(err)
			}
		}
		net := add - reduce
		if net.IsZero() {
			return nil, apperror.NewValidation("correction must change the stock level").
				WithDetail("field", "addToStock")
		}
		a.Quantity = net
		a.Amount = types.Zero()

	case TypeOther:
		if strings.TrimSpace(f.Quantity) != "" {
			q, err := types.ParseQuantity(f.Quantity)
			if err != nil {
				return nil, apperror.NewParseError("quantity", f.Quantity).WithCause(err)
			}
			a.Quantity = q
		}
		amount, err := types.NewMoneyFromString(strings.TrimSpace(f.Amount))
		if err != nil {
			return nil, apperror.NewParseError("amount", f.Amount).WithCause(err)
		}
		a.Amount = amount
	}

	if note := strings.TrimSpace(f.Note); note != "" {
		a.Note = &note
	}

	return a, nil
}
