package form

// Personal holds the first section of the form.
type Personal struct {
	Nome       string `json:"nome" validate:"required"`
	Nascimento string `json:"nascimento" validate:"required"`
	CPF        string `json:"cpf" validate:"cpf"`
	Telefone   string `json:"telefone" validate:"required"`
}

// Address holds the residential address section.
type Address struct {
	CEP    string `json:"cep" validate:"required"`
	Rua    string `json:"rua" validate:"required"`
	Bairro string `json:"bairro" validate:"required"`
	Cidade string `json:"cidade" validate:"required"`
	Estado string `json:"estado" validate:"required"`
}

// Professional holds occupation details.
type Professional struct {
	Profissao string `json:"profissao" validate:"required,profession"`
	Empresa   string `json:"empresa" validate:"required"`
	Salario   string `json:"salario" validate:"required"`
}

// Data is the whole form as collected across the three steps.
type Data struct {
	Personal     Personal     `json:"personal"`
	Address      Address      `json:"address"`
	Professional Professional `json:"professional"`
}

// PersonalPatch carries a partial update; nil fields are left untouched.
type PersonalPatch struct {
	Nome       *string `json:"nome"`
	Nascimento *string `json:"nascimento"`
	CPF        *string `json:"cpf"`
	Telefone   *string `json:"telefone"`
}

// Apply merges the set fields of p into dst.
func (p PersonalPatch) Apply(dst *Personal) {
	set(&dst.Nome, p.Nome)
	set(&dst.Nascimento, p.Nascimento)
	set(&dst.CPF, p.CPF)
	set(&dst.Telefone, p.Telefone)
}

type AddressPatch struct {
	CEP    *string `json:"cep"`
	Rua    *string `json:"rua"`
	Bairro *string `json:"bairro"`
	Cidade *string `json:"cidade"`
	Estado *string `json:"estado"`
}

func (p AddressPatch) Apply(dst *Address) {
	set(&dst.CEP, p.CEP)
	set(&dst.Rua, p.Rua)
	set(&dst.Bairro, p.Bairro)
	set(&dst.Cidade, p.Cidade)
	set(&dst.Estado, p.Estado)
}

type ProfessionalPatch struct {
	Profissao *string `json:"profissao"`
	Empresa   *string `json:"empresa"`
	Salario   *string `json:"salario"`
}

func (p ProfessionalPatch) Apply(dst *Professional) {
	set(&dst.Profissao, p.Profissao)
	set(&dst.Empresa, p.Empresa)
	set(&dst.Salario, p.Salario)
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
