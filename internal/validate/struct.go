package validate

import "github.com/go-playground/validator/v10"

// FieldError reports one failed struct-tag rule for an API payload.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

var v = validator.New()

// Struct runs go-playground tag validation and returns one entry per
// failed field, nil when the payload is valid.
func Struct(data any) []FieldError {
	err := v.Struct(data)
	if err == nil {
		return nil
	}
	var out []FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}
