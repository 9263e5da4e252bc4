package helper

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	nicPattern   = regexp.MustCompile(`^(\d{12}|\d{9}[vV])$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// IsValidNIC accepts the 12-digit form and the legacy 9 digits + V form.
func IsValidNIC(s string) bool { return nicPattern.MatchString(s) }

func IsValidPhone(s string) bool { return phonePattern.MatchString(s) }

func IsValidEmail(s string) bool { return emailPattern.MatchString(s) }

func IsValidMonth(s string) bool { return monthPattern.MatchString(s) }

// ParseID parses an id taken from the path or query string.
// A malformed value is a 400 named after the parameter.
func ParseID(raw, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+param)
	}
	return id, nil
}

// IsFullName requires at least two whitespace separated words.
func IsFullName(s string) bool { return len(strings.Fields(s)) >= 2 }

// Validate is shared by all handlers; custom tags are registered once.
var Validate = NewValidator()

func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("nic", func(fl validator.FieldLevel) bool {
		return IsValidNIC(fl.Field().String())
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return IsFullName(fl.Field().String())
	})
	_ = v.RegisterValidation("yyyymm", func(fl validator.FieldLevel) bool {
		return IsValidMonth(fl.Field().String())
	})
	_ = v.RegisterValidation("program", func(fl validator.FieldLevel) bool {
		p := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
		return p == "OL" || p == "AL"
	})
	return v
}

// ValidationMessages turns validator errors into field → messages.
func ValidationMessages(err error) (string, map[string][]string) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error(), nil
	}
	out := make(map[string][]string, len(ve))
	first := ""
	for _, fe := range ve {
		msg := fieldMessage(fe)
		out[fe.Field()] = append(out[fe.Field()], msg)
		if first == "" {
			first = msg
		}
	}
	return first, out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "nic":
		return fmt.Sprintf("Invalid %s NIC format", fe.Field())
	case "phone10":
		return "Phone number must be 10 digits"
	case "looseemail", "email":
		return "Invalid email format"
	case "fullname":
		return "Name must contain at least 2 words"
	case "yyyymm":
		return fmt.Sprintf("%s must be in YYYY-MM format", fe.Field())
	case "program":
		return "Program must be OL or AL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must have exactly %s items", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// ValidateStruct runs the shared validator and writes a 400 on failure.
// Returns (true, nil) when the request can proceed.
func ValidateStruct(c *fiber.Ctx, in any) (bool, error) {
	if err := Validate.Struct(in); err != nil {
		msg, fields := ValidationMessages(err)
		return false, JsonValidationError(c, msg, fields)
	}
	return true, nil
}
