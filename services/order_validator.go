package services

import (
	"fmt"
	"sort"

	"github.com/soleworks/soleworks-api/models"
)

// Validation error codes
const (
	CodeInvalidModelType = "INVALID_MODEL_TYPE"
	CodeMissingField     = "MISSING_FIELD"
	CodeInvalidLayer     = "INVALID_LAYER"
	CodeInvalidMaterial  = "INVALID_MATERIAL"
	CodeInvalidColor     = "INVALID_COLOR"
)

// ValidationError describes the first rule an order submission violated
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CreateOrderInput is the validated shape of an order submission
type CreateOrderInput struct {
	CustomerName  string
	CustomerEmail string
	ShoeSize      float64
	Address       string
	ModelType     string
	Layers        models.LayerMap
}

// OrderValidator checks order submissions against the product catalog.
// It is a pure checking component; it never mutates its input.
type OrderValidator struct {
	catalog *Catalog
}

// NewOrderValidator creates a validator backed by the given catalog
func NewOrderValidator(catalog *Catalog) *OrderValidator {
	return &OrderValidator{catalog: catalog}
}

// Validate returns the first violation found, in slot iteration order, or nil.
//
// Layer slots are optional: an omitted slot is valid-but-unset, but every
// supplied slot must carry an in-domain material and a non-empty color, and
// must belong to the order's model type.
func (v *OrderValidator) Validate(in *CreateOrderInput) *ValidationError {
	slots, err := v.catalog.SlotsFor(in.ModelType)
	if err != nil {
		return &ValidationError{
			Code:    CodeInvalidModelType,
			Message: fmt.Sprintf("model type must be one of: sneaker, heel (got %q)", in.ModelType),
		}
	}

	if in.Address == "" {
		return &ValidationError{
			Code:    CodeMissingField,
			Message: "address is required",
		}
	}

	// Layer keys that are not slots of this model type can only come from a
	// client bug; reject them before walking the slot list. Sorted so the
	// named slot is stable when several keys are unknown.
	var unknown []string
	for name := range in.Layers {
		if !contains(slots, name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &ValidationError{
			Code:    CodeInvalidLayer,
			Message: fmt.Sprintf("layer %q does not exist for model type %q", unknown[0], in.ModelType),
		}
	}

	for _, slot := range slots {
		layer, ok := in.Layers[slot]
		if !ok {
			continue
		}
		if !v.catalog.IsValidMaterial(layer.Material) {
			return &ValidationError{
				Code:    CodeInvalidMaterial,
				Message: fmt.Sprintf("layer %q has invalid material %q", slot, layer.Material),
			}
		}
		if layer.Color == "" {
			return &ValidationError{
				Code:    CodeInvalidColor,
				Message: fmt.Sprintf("layer %q has an empty color", slot),
			}
		}
	}

	return nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
