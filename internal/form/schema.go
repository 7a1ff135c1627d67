package form

import "github.com/cadastro-app/cadastro/internal/cpf"

// Section identifiers.
const (
	SectionPersonal     = "personal"
	SectionAddress      = "address"
	SectionProfessional = "professional"
)

// FieldType tells the presentation layer which input widget to render.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
	FieldCurrency FieldType = "currency"
	FieldCPF      FieldType = "cpf"
	FieldCEP      FieldType = "cep"
)

// Layout controls how fields of a section are arranged.
type Layout string

const (
	LayoutSingle Layout = "single"
	LayoutRow    Layout = "row"
	LayoutGrid   Layout = "grid"
)

// Field describes one input of a section.
type Field struct {
	Name          string            `json:"name"`
	Label         string            `json:"label"`
	Type          FieldType         `json:"type"`
	Placeholder   string            `json:"placeholder,omitempty"`
	Mask          string            `json:"mask,omitempty"`
	Prefix        string            `json:"prefix,omitempty"`
	Required      bool              `json:"required"`
	ReadOnly      bool              `json:"readonly,omitempty"`
	CSSClass      string            `json:"css_class,omitempty"`
	ErrorMessages map[string]string `json:"error_messages,omitempty"`
}

// Section is one step of the form.
type Section struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Layout Layout  `json:"layout"`
	Fields []Field `json:"fields"`
}

// Schema is the ordered list of sections.
type Schema struct {
	Sections []Section `json:"sections"`
}

// Section returns the section with the given id.
func (s Schema) Section(id string) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return Section{}, false
}

// Field returns the field with the given name.
func (s Section) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func required(msg string) map[string]string {
	return map[string]string{KeyRequired: msg}
}

// DefaultSchema returns the three-step onboarding form.
func DefaultSchema() Schema {
	return Schema{Sections: []Section{
		{
			ID:     SectionPersonal,
			Title:  "Dados Pessoais",
			Layout: LayoutRow,
			Fields: []Field{
				{Name: "nome", Label: "Nome completo", Type: FieldText, Required: true, CSSClass: "full",
					ErrorMessages: required("Nome é obrigatório")},
				{Name: "nascimento", Label: "Data de nascimento", Type: FieldDate, Placeholder: "dd/mm/aaaa",
					Required: true, ReadOnly: true, ErrorMessages: required("Data de nascimento é obrigatória")},
				{Name: "cpf", Label: "CPF", Type: FieldCPF, Mask: "000.000.000-00",
					ErrorMessages: map[string]string{cpf.ErrorKey: "CPF inválido"}},
				{Name: "telefone", Label: "Telefone", Type: FieldTel, Mask: "(00) 00000-0000", Required: true,
					ErrorMessages: required("Telefone é obrigatório")},
			},
		},
		{
			ID:     SectionAddress,
			Title:  "Endereço",
			Layout: LayoutRow,
			Fields: []Field{
				{Name: "cep", Label: "CEP", Type: FieldCEP, Mask: "00000-000", Placeholder: "00000-000",
					Required: true, CSSClass: "full", ErrorMessages: required("CEP é obrigatório")},
				{Name: "rua", Label: "Endereço", Type: FieldText, Required: true, CSSClass: "full",
					ErrorMessages: required("Endereço é obrigatório")},
				{Name: "bairro", Label: "Bairro", Type: FieldText, Required: true,
					ErrorMessages: required("Bairro é obrigatório")},
				{Name: "cidade", Label: "Cidade", Type: FieldText, Required: true,
					ErrorMessages: required("Cidade é obrigatória")},
				{Name: "estado", Label: "Estado", Type: FieldText, Required: true,
					ErrorMessages: required("Estado é obrigatório")},
			},
		},
		{
			ID:     SectionProfessional,
			Title:  "Profissão",
			Layout: LayoutSingle,
			Fields: []Field{
				{Name: "profissao", Label: "Profissão", Type: FieldSelect, Required: true, CSSClass: "full",
					ErrorMessages: map[string]string{
						KeyRequired:          "Profissão é obrigatória",
						KeyUnknownProfession: "Profissão inválida",
					}},
				{Name: "empresa", Label: "Empresa", Type: FieldText, Required: true, CSSClass: "full",
					ErrorMessages: required("Empresa é obrigatória")},
				{Name: "salario", Label: "Salário", Type: FieldCurrency, Mask: "separator.2", Prefix: "R$ ",
					Required: true, CSSClass: "full", ErrorMessages: required("Salário é obrigatório")},
			},
		},
	}}
}
