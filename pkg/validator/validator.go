package validator

import (
	"context"
	"strings"

	"github.com/go-playground/validator"
)

var global *validator.Validate

const (
	MsgFieldRequired = "is required"
	MsgSequenceEmpty = "must contain at least one item"
	MsgBadEnumValue  = "must be one of:"
	MsgUnknown       = "is invalid"
)

func init() {
	SetValidator(New())
}

func New() *validator.Validate {
	return validator.New()
}

func SetValidator(v *validator.Validate) {
	global = v
}

func Validator() *validator.Validate {
	return global
}

// Validate checks every rule on the structure and returns a field -> message
// map covering all offending fields, not just the first one. An empty map
// means the structure passed.
func Validate(ctx context.Context, structure any) map[string]string {
	return parseValidationErrors(Validator().StructCtx(ctx, structure))
}

func parseValidationErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	vErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(vErrors) == 0 {
		return nil
	}
	fields := make(map[string]string, len(vErrors))
	for _, ve := range vErrors {
		name := strings.ToLower(ve.Field())
		var msg string
		switch ve.Tag() {
		case "required":
			msg = MsgFieldRequired
		case "min":
			// min is only used on the sequence fields
			msg = MsgSequenceEmpty
		case "oneof":
			msg = MsgBadEnumValue + " " + ve.Param()
		default:
			msg = MsgUnknown
		}
		fields[name] = name + " " + msg
	}
	return fields
}
