package cpf

import "github.com/go-playground/validator/v10"

const (
	// Tag is the struct tag that runs IsValid on a string field.
	Tag = "cpf"
	// ErrorKey is the key attached to a field that fails the cpf tag.
	ErrorKey = "cpfInvalid"
)

// RegisterValidation installs the cpf tag on v.
func RegisterValidation(v *validator.Validate) error {
	return v.RegisterValidation(Tag, func(fl validator.FieldLevel) bool {
		return IsValid(fl.Field().String())
	})
}
