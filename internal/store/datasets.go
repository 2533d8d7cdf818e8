package store

// Dataset describes one of the tabular collections the store owns: its
// logical name, backing file, fixed column schema, and (when it has
// one) the integer identity column.
type Dataset struct {
	Name     string
	File     string
	Columns  []string
	IDColumn string
}

// The seven datasets. File names are the historical ones the rest of
// the tooling expects; column headers are the English schema.
var (
	Users = Dataset{
		Name:    "users",
		File:    "usuarios.csv",
		Columns: []string{"user_id", "name", "role", "area"},
	}
	Assets = Dataset{
		Name:    "assets",
		File:    "activos.csv",
		Columns: []string{"tag", "description", "area"},
	}
	Notifications = Dataset{
		Name: "notifications",
		File: "notificaciones.csv",
		Columns: []string{"id", "created_at", "tag", "title", "reason",
			"priority", "status", "assigned_to", "received_at", "closed_at", "evidence"},
		IDColumn: "id",
	}
	RoundTemplates = Dataset{
		Name:    "round_templates",
		File:    "rondas_plantillas.csv",
		Columns: []string{"template", "tag", "variable", "lower_limit", "upper_limit"},
	}
	RoundExecutions = Dataset{
		Name:     "round_executions",
		File:     "rondas_ejecuciones.csv",
		Columns:  []string{"id", "ts", "template", "tag", "variable", "value", "in_range", "operator"},
		IDColumn: "id",
	}
	Incidents = Dataset{
		Name:     "incidents",
		File:     "incidentes.csv",
		Columns:  []string{"id", "ts", "tag", "title", "severity", "description", "reported_by", "status"},
		IDColumn: "id",
	}
	Permits = Dataset{
		Name:     "permits",
		File:     "ptw_ot.csv",
		Columns:  []string{"id", "requested_at", "type", "requester", "area", "status", "hse_approved", "closed_at", "attachments"},
		IDColumn: "id",
	}
)

// All lists every dataset the store manages.
var All = []Dataset{Users, Assets, Notifications, RoundTemplates, RoundExecutions, Incidents, Permits}

// ByName returns the dataset with the given logical name.
func ByName(name string) (Dataset, bool) {
	for _, ds := range All {
		if ds.Name == name {
			return ds, true
		}
	}
	return Dataset{}, false
}
