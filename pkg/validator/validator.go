package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/ghuser/barstock/pkg/httpx"
)

var (
	validate *validator.Validate

	messagesMu sync.RWMutex
	messages   = map[string]string{}
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

		// ignore unexported or explicitly ignored
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister("notblank", validators.NotBlank, "This field must not be blank")
	mustRegister("jsonnumber", isNumber, "Must be a numeric value")
	mustRegister("whole", isWhole, "Must be a whole number")
	mustRegister("nonnegative", isNonNegative, "Must be at least 0")
}

func mustRegister(tag string, fn validator.Func, message string) {
	if err := Register(tag, fn, message); err != nil {
		panic(err)
	}
}

// Register adds a custom validation tag and the message reported when it fails.
// Call it from package init functions only; registration is not safe to run
// concurrently with validation.
func Register(tag string, fn validator.Func, message string) error {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("register validation %q: %w", tag, err)
	}
	messagesMu.Lock()
	messages[tag] = message
	messagesMu.Unlock()
	return nil
}

// RegisterStringValidation registers tag for string-kinded fields checked by fn.
func RegisterStringValidation(tag string, fn func(string) bool, message string) error {
	return Register(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	}, message)
}

// Validate runs struct-level validation using go-playground/validator tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors converts validator.ValidationErrors into a map of
// field name → human-readable message.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}
	for _, e := range ve {
		errs[e.Field()] = formatFieldError(e)
	}
	return errs
}

// FormatValidationErrorsWith is FormatValidationErrors with per-field
// messages. overrides is keyed by "field.tag", e.g. "name.required".
func FormatValidationErrorsWith(err error, overrides map[string]string) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}
	for _, e := range ve {
		if msg, ok := overrides[e.Field()+"."+e.Tag()]; ok {
			errs[e.Field()] = msg
			continue
		}
		errs[e.Field()] = formatFieldError(e)
	}
	return errs
}

func formatFieldError(e validator.FieldError) string {
	messagesMu.RLock()
	msg, ok := messages[e.Tag()]
	messagesMu.RUnlock()
	if ok {
		return msg
	}

	switch e.Tag() {
	case "required":
		return "This field is required"
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "min":
		return fmt.Sprintf("Minimum length is %s", e.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", e.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(e.Param(), " ", ", "))
	case "numeric":
		return "Must be a numeric value"
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", e.Param())
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

// DecodeJSON decodes the JSON request body into T and writes an error
// response if decoding fails: 413 when the body exceeds the configured limit,
// 400 otherwise. Returns (parsedStruct, true) on success or (nil, false) on failure.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	return &req, true
}
