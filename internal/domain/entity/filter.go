package entity

// EmptySelectionMode decide o que uma seleção vazia significa para uma dimensão.
type EmptySelectionMode string

const (
	// EmptySelectsAll trata a seleção vazia como "sem restrição" (padrão).
	EmptySelectsAll EmptySelectionMode = "all"
	// EmptySelectsNone reproduz a variante antiga em que nada selecionado exclui todas as linhas.
	EmptySelectsNone EmptySelectionMode = "none"
)

// FilterDimensions lists the dimensions a FilterSelection can constrain, in display order.
var FilterDimensions = []Field{
	FieldConsultant,
	FieldClient,
	FieldBusinessHead,
	FieldMonth,
	FieldYear,
	FieldFiscalYear,
}

// FilterSelection holds the chosen values per dimension.
// Dimensions combine with AND, values within a dimension with OR.
type FilterSelection struct {
	Consultants   []string           `json:"consultants,omitempty" yaml:"consultants,omitempty" toml:"consultants,omitempty"`
	Clients       []string           `json:"clients,omitempty" yaml:"clients,omitempty" toml:"clients,omitempty"`
	BusinessHeads []string           `json:"business_heads,omitempty" yaml:"business_heads,omitempty" toml:"business_heads,omitempty"`
	Months        []string           `json:"months,omitempty" yaml:"months,omitempty" toml:"months,omitempty"`
	Years         []string           `json:"years,omitempty" yaml:"years,omitempty" toml:"years,omitempty"`
	FiscalYears   []string           `json:"fiscal_years,omitempty" yaml:"fiscal_years,omitempty" toml:"fiscal_years,omitempty"`
	EmptyMode     EmptySelectionMode `json:"empty_mode,omitempty" yaml:"empty_mode,omitempty" toml:"empty_mode,omitempty"`
}

// Values returns the selected values for a dimension.
func (s FilterSelection) Values(f Field) []string {
	switch f {
	case FieldConsultant:
		return s.Consultants
	case FieldClient:
		return s.Clients
	case FieldBusinessHead:
		return s.BusinessHeads
	case FieldMonth:
		return s.Months
	case FieldYear:
		return s.Years
	case FieldFiscalYear:
		return s.FiscalYears
	}
	return nil
}

// Set replaces the selected values for a dimension.
func (s *FilterSelection) Set(f Field, values []string) {
	switch f {
	case FieldConsultant:
		s.Consultants = values
	case FieldClient:
		s.Clients = values
	case FieldBusinessHead:
		s.BusinessHeads = values
	case FieldMonth:
		s.Months = values
	case FieldYear:
		s.Years = values
	case FieldFiscalYear:
		s.FiscalYears = values
	}
}

// IsEmpty reports whether no dimension has a selected value.
func (s FilterSelection) IsEmpty() bool {
	for _, f := range FilterDimensions {
		if len(s.Values(f)) > 0 {
			return false
		}
	}
	return true
}

// FilterOptions lists the distinct non-null values of each dimension in a dataset.
type FilterOptions map[Field][]string
