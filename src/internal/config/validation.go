package config

import (
	"fmt"
	"net"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/maksimkurb/keen-tap/src/internal/errors"
)

// maxInterfaceNameLen is IFNAMSIZ minus the terminating NUL.
const maxInterfaceNameLen = 15

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "ifname":
		return fmt.Sprintf("must be a valid interface name (1-%d bytes, no '/' or whitespace)", maxInterfaceNameLen)
	case "nefield":
		return "interface_a and interface_b must differ"
	case "hostport":
		return "must be in format 'host:port'"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	FieldPath string // Dot-notation field path (e.g., "tap.interface_a")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("ifname", validateInterfaceNameTag); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("hostport", validateHostPort); err != nil {
		panic(err)
	}

	// Register function to get field name from "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validator: kernel interface name
func validateInterfaceNameTag(fl validator.FieldLevel) bool {
	return isValidInterfaceName(fl.Field().String())
}

// Custom validator: host:port format
func validateHostPort(fl validator.FieldLevel) bool {
	_, _, err := net.SplitHostPort(fl.Field().String())
	return err == nil
}

func isValidInterfaceName(name string) bool {
	if name == "" || len(name) > maxInterfaceNameLen {
		return false
	}
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/ \t\n\r\v\f")
}

// ValidateInterfaceName checks a single interface name given on the command line or in a request.
func ValidateInterfaceName(name string) error {
	if !isValidInterfaceName(name) {
		return apperrors.NewValidationError(fmt.Sprintf("invalid interface name %q", name), nil)
	}
	return nil
}
