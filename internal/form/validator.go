package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cadastro-app/cadastro/internal/cpf"
)

// Error keys attached to failing fields.
const (
	KeyRequired          = "required"
	KeyUnknownProfession = "professionUnknown"
)

const professionTag = "profession"

// ErrUnknownSection is returned for a section id the schema does not define.
var ErrUnknownSection = errors.New("unknown form section")

// FieldError is the error key and rendered message for one field.
type FieldError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// FieldErrors maps field names to their first failing rule.
type FieldErrors map[string]FieldError

// Catalog reports whether a profession is offered.
type Catalog interface {
	Contains(name string) bool
}

// Validator checks form sections against their struct rules and renders
// messages from the schema.
type Validator struct {
	v      *validator.Validate
	schema Schema
}

// NewValidator builds a validator for schema. A nil catalog accepts any profession.
func NewValidator(schema Schema, catalog Catalog) (*Validator, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := cpf.RegisterValidation(v); err != nil {
		return nil, fmt.Errorf("register cpf validation: %w", err)
	}
	if err := v.RegisterValidation(professionTag, func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		return name == "" || catalog == nil || catalog.Contains(name)
	}); err != nil {
		return nil, fmt.Errorf("register profession validation: %w", err)
	}
	return &Validator{v: v, schema: schema}, nil
}

// ValidateSection validates one section value. value must be the section's
// struct (Personal, Address or Professional). A nil map means no errors.
func (fv *Validator) ValidateSection(id string, value any) (FieldErrors, error) {
	section, ok := fv.schema.Section(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, id)
	}

	err := fv.v.Struct(value)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validate %s: %w", id, err)
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := out[name]; seen {
			continue
		}
		key := errorKey(fe.Tag())
		out[name] = FieldError{Key: key, Message: message(section, name, key)}
	}
	return out, nil
}

// ValidateAll validates every section of data and returns the failing ones
// keyed by section id.
func (fv *Validator) ValidateAll(data Data) (map[string]FieldErrors, error) {
	sections := []struct {
		id    string
		value any
	}{
		{SectionPersonal, data.Personal},
		{SectionAddress, data.Address},
		{SectionProfessional, data.Professional},
	}

	out := make(map[string]FieldErrors)
	for _, s := range sections {
		errs, err := fv.ValidateSection(s.id, s.value)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			out[s.id] = errs
		}
	}
	return out, nil
}

func errorKey(tag string) string {
	switch tag {
	case cpf.Tag:
		return cpf.ErrorKey
	case professionTag:
		return KeyUnknownProfession
	default:
		return tag
	}
}

func message(section Section, field, key string) string {
	if f, ok := section.Field(field); ok {
		if msg, ok := f.ErrorMessages[key]; ok {
			return msg
		}
	}
	return key
}
