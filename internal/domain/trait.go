package domain

// TraitCode identifica una de las seis categorias RIASEC.
type TraitCode string

const (
	TraitRealistic     TraitCode = "R"
	TraitInvestigative TraitCode = "I"
	TraitArtistic      TraitCode = "A"
	TraitSocial        TraitCode = "S"
	TraitEnterprising  TraitCode = "E"
	TraitConventional  TraitCode = "C"
)

// StatementsPerTrait is fixed: every trait is rated on exactly three statements.
const StatementsPerTrait = 3

// CanonicalOrder is the catalog order; it also breaks ties between equal scores.
var CanonicalOrder = []TraitCode{
	TraitRealistic,
	TraitInvestigative,
	TraitArtistic,
	TraitSocial,
	TraitEnterprising,
	TraitConventional,
}

// Valid reports whether c is one of the six known codes.
func (c TraitCode) Valid() bool {
	for _, code := range CanonicalOrder {
		if c == code {
			return true
		}
	}
	return false
}

type Trait struct {
	Code        TraitCode `json:"code" yaml:"code"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Careers     []string  `json:"careers" yaml:"careers"`
	Statements  []string  `json:"statements" yaml:"statements"`
}
