package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field names in messages follow the json tags.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. All failing fields are
// reported, joined by "; ".
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, len(ve))
	for idx, fe := range ve {
		msgs[idx] = describe(fe)
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ruleMessages maps a validation tag to its message; %[1]s is the field and
// %[2]s the tag parameter.
var ruleMessages = map[string]string{
	"required": "%[1]s is required",
	"email":    "%[1]s must be a valid email",
	"min":      "%[1]s must be at least %[2]s",
	"oneof":    "%[1]s must be one of: %[2]s",
	"datetime": "%[1]s must match the layout %[2]s",
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	if msg, ok := ruleMessages[fe.Tag()]; ok {
		return fmt.Sprintf(msg, field, fe.Param())
	}
	return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
}
