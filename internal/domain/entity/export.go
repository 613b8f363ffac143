package entity

// ExportKind identifies one of the exportable tables.
type ExportKind string

const (
	ExportFiltered   ExportKind = "filtered"
	ExportMonth      ExportKind = "month"
	ExportTeam       ExportKind = "team"
	ExportConsultant ExportKind = "consultant"
	ExportClient     ExportKind = "client"
)

// ExportKinds lists every export kind in a stable order.
var ExportKinds = []ExportKind{ExportFiltered, ExportMonth, ExportTeam, ExportConsultant, ExportClient}

var exportFileNames = map[ExportKind]string{
	ExportFiltered:   "filtered_data",
	ExportMonth:      "month_wise_summary",
	ExportTeam:       "team_wise_summary",
	ExportConsultant: "consultant_summary",
	ExportClient:     "client_summary",
}

var exportTitles = map[ExportKind]string{
	ExportFiltered:   "Filtered Data",
	ExportMonth:      "Month-wise Summary",
	ExportTeam:       "Team-wise Summary",
	ExportConsultant: "Consultant Summary",
	ExportClient:     "Client Summary",
}

// Title returns the human title, also used as the sheet name.
func (k ExportKind) Title() string {
	if title, ok := exportTitles[k]; ok {
		return title
	}
	return "Sheet1"
}

// FileName returns the deterministic base filename (without extension) of the export.
func (k ExportKind) FileName() string {
	if name, ok := exportFileNames[k]; ok {
		return name
	}
	return string(k)
}

// Valid reports whether k is a known export kind.
func (k ExportKind) Valid() bool {
	_, ok := exportFileNames[k]
	return ok
}
