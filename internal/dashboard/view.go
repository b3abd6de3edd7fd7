package dashboard

// MetricField names a single-value display surface.
type MetricField int

const (
	FieldTotalMatches MetricField = iota
	FieldTotalCerts
	FieldActiveRules
	FieldUptime
	FieldCertsPerMinute
	FieldMatchesPerMinute
	FieldAvgMatchTime
	FieldCPU
	FieldMemory
	FieldGoroutines
)

// MetricFields lists every field in display order.
var MetricFields = []MetricField{
	FieldTotalMatches, FieldTotalCerts, FieldActiveRules, FieldUptime,
	FieldCertsPerMinute, FieldMatchesPerMinute, FieldAvgMatchTime,
	FieldCPU, FieldMemory, FieldGoroutines,
}

// Label returns the short caption shown next to the value.
func (f MetricField) Label() string {
	switch f {
	case FieldTotalMatches:
		return "Matches"
	case FieldTotalCerts:
		return "Certs"
	case FieldActiveRules:
		return "Rules"
	case FieldUptime:
		return "Uptime"
	case FieldCertsPerMinute:
		return "Certs/min"
	case FieldMatchesPerMinute:
		return "Matches/min"
	case FieldAvgMatchTime:
		return "Avg match"
	case FieldCPU:
		return "CPU"
	case FieldMemory:
		return "Memory"
	case FieldGoroutines:
		return "Workers"
	default:
		return "?"
	}
}

// View is everything the dashboard writes to. It is the only boundary that
// touches presentation; implementations must not call back into Dashboard.
type View interface {
	SetMetric(field MetricField, value string)
	SetRows(rows []Row)
	SetEmpty(message string)
	SetMatchCount(label string)
	SetPagination(p Pagination)
	SetStatus(c Connectivity)
	SetClearVisible(visible bool)
}
