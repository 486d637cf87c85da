package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "ops-admin-backend/internal/common/errors"
)

const (
	MaxHandleLength = 32
	MaxTitleLength  = 200
)

// Telegram handle with an optional leading @.
var telegramHandleRegex = regexp.MustCompile(`^@?[a-zA-Z0-9_]{1,32}$`)

// Register installs the custom validators on gin's binding engine and makes JSON binding
// reject unknown fields. Call once at startup.
func Register() error {
	binding.EnableDecoderDisallowUnknownFields = true

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		return fmt.Errorf("register notblank: %w", err)
	}
	if err := v.RegisterValidation("tghandle", tgHandle); err != nil {
		return fmt.Errorf("register tghandle: %w", err)
	}
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

func tgHandle(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	return IsTelegramHandle(field.String())
}

// IsTelegramHandle reports whether s looks like a Telegram username, with or without "@".
func IsTelegramHandle(s string) bool {
	return telegramHandleRegex.MatchString(s)
}

// NormalizeHandles trims every handle, drops empty entries and removes duplicates while
// keeping the first occurrence order.
func NormalizeHandles(handles []string) []string {
	seen := make(map[string]struct{}, len(handles))
	out := make([]string, 0, len(handles))
	for _, h := range handles {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}

// FromBindError converts a gin binding error into a field-specific validation AppError.
func FromBindError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		appErr := apperrors.NewValidationError(first.Field(), reason(first))
		if len(verrs) > 1 {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = reason(fe)
			}
			appErr.WithDetail("fields", fields)
		}
		return appErr
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return apperrors.NewValidationError("body", "request body is empty")
	case errors.As(err, &syntaxErr):
		return apperrors.NewValidationError("body", "malformed JSON")
	case errors.As(err, &typeErr):
		return apperrors.NewValidationError(typeErr.Field, fmt.Sprintf("must be of type %s", typeErr.Type))
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return apperrors.NewValidationError(field, "unknown field")
	}
	return apperrors.NewValidationError("body", err.Error())
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "tghandle":
		return "must be a Telegram handle"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email"
	case "dive":
		return "contains an invalid element"
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
