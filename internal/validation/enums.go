package validation

// Allowed enum values for record fields.
var (
	ValidRoles = []string{"Operator", "Supervisor", "HSE"}

	ValidPriorities           = []string{"P1", "P2", "P3", "P4"}
	ValidNotificationStatuses = []string{"Pending", "Received", "Completed"}

	ValidSeverities       = []string{"Low", "Medium", "High", "Critical"}
	ValidIncidentStatuses = []string{"Open", "Closed"}

	ValidPermitTypes    = []string{"Hot Work", "Confined Space", "Electrical", "Lifting"}
	ValidPermitStatuses = []string{"Draft", "Approved", "Closed"}
	ValidHSEApprovals   = []string{"Yes", "No"}
)
