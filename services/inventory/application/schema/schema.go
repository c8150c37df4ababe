// Package schema validates untrusted inventory payloads before they reach
// storage. Failures are reported as *domain.ValidationError with one message
// per offending field; nothing is ever partially applied.
package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"

	pkgvalidator "github.com/ghuser/barstock/pkg/validator"
	inventorydomain "github.com/ghuser/barstock/services/inventory/domain"
	"github.com/ghuser/barstock/services/inventory/domain/models"
	domainsvcs "github.com/ghuser/barstock/services/inventory/domain/services"
)

func init() {
	if err := pkgvalidator.RegisterStringValidation("category", func(s string) bool {
		return models.Category(s).Valid()
	}, "Please select a category"); err != nil {
		panic(err)
	}
	if err := pkgvalidator.RegisterStringValidation("unit", func(s string) bool {
		return models.Unit(s).Valid()
	}, "Please select a unit"); err != nil {
		panic(err)
	}
}

// InsertPayload is the body accepted by create and full-replacement update.
// Numeric fields accept numbers or numeric strings ("5").
type InsertPayload struct {
	Name              string              `json:"name"              validate:"required,notblank"                  example:"Jack Daniel's"`
	Category          string              `json:"category"          validate:"required,category"                  example:"Distillati"`
	Quantity          pkgvalidator.Number `json:"quantity"          validate:"required,jsonnumber,nonnegative,whole" example:"24" swaggertype:"integer"`
	Unit              string              `json:"unit"              validate:"required,unit"                      example:"bottles"`
	LowStockThreshold pkgvalidator.Number `json:"lowStockThreshold" validate:"required,jsonnumber,nonnegative,whole" example:"12" swaggertype:"integer"`
} // @name InsertPayload

// AdjustPayload is the body of a stock adjustment. Adjustment is a signed delta.
type AdjustPayload struct {
	Adjustment pkgvalidator.Number `json:"adjustment" validate:"required,jsonnumber,whole" example:"-2" swaggertype:"integer"`
} // @name AdjustPayload

// Adjustment is a validated stock adjustment.
type Adjustment struct {
	ID    models.ItemID
	Delta int64
}

var insertMessages = map[string]string{
	"name.required":                 "Item name is required",
	"name.notblank":                 "Item name is required",
	"category.required":             "Please select a category",
	"unit.required":                 "Please select a unit",
	"quantity.required":             "Quantity is required",
	"quantity.jsonnumber":           "Quantity must be a number",
	"quantity.nonnegative":          "Quantity must be at least 0",
	"quantity.whole":                "Quantity must be a whole number",
	"lowStockThreshold.required":    "Threshold is required",
	"lowStockThreshold.jsonnumber":  "Threshold must be a number",
	"lowStockThreshold.nonnegative": "Threshold must be at least 0",
	"lowStockThreshold.whole":       "Threshold must be a whole number",
}

var adjustMessages = map[string]string{
	"adjustment.required":   "Adjustment is required",
	"adjustment.jsonnumber": "Adjustment must be a whole number",
	"adjustment.whole":      "Adjustment must be a whole number",
}

// ValidateInsert checks p and returns the coerced item fields.
func ValidateInsert(p InsertPayload) (models.ItemFields, error) {
	fields := map[string]string{}
	if err := pkgvalidator.Validate(&p); err != nil {
		fields = pkgvalidator.FormatValidationErrorsWith(err, insertMessages)
	}

	if _, failed := fields["name"]; !failed {
		if err := domainsvcs.ValidateName(p.Name); err != nil {
			fields["name"] = capitalize(err.Error())
		}
	}

	if len(fields) > 0 {
		return models.ItemFields{}, &inventorydomain.ValidationError{Fields: fields}
	}

	// Both parse; the whole tag already checked them.
	quantity, _ := p.Quantity.Int64()
	threshold, _ := p.LowStockThreshold.Int64()

	return models.ItemFields{
		Name:              p.Name,
		Category:          models.Category(p.Category),
		Quantity:          quantity,
		Unit:              models.Unit(p.Unit),
		LowStockThreshold: threshold,
	}, nil
}

// ValidateAdjustment checks the target id and the adjustment body. Any
// whole number is accepted, including zero and large negatives.
func ValidateAdjustment(id string, p AdjustPayload) (Adjustment, error) {
	fields := map[string]string{}
	if err := pkgvalidator.Validate(&p); err != nil {
		fields = pkgvalidator.FormatValidationErrorsWith(err, adjustMessages)
	}
	if strings.TrimSpace(id) == "" {
		fields["id"] = "Item id is required"
	}
	if len(fields) > 0 {
		return Adjustment{}, &inventorydomain.ValidationError{Fields: fields}
	}

	delta, _ := p.Adjustment.Int64()
	return Adjustment{ID: models.ItemID(id), Delta: delta}, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
