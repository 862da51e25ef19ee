package syndication

// Export outcome per processed portal configuration
const (
	ExportStatusSuccess = "success"
	ExportStatusError   = "error"
)

// ExportResult is the transient outcome of processing one export target.
// Results are built fresh on every run and never persisted.
type ExportResult struct {
	Agency  string `json:"agency"`
	Portal  string `json:"portal"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SuccessResult builds a success entry for a target
func SuccessResult(target ExportTarget) ExportResult {
	return ExportResult{
		Agency: target.AgencyName,
		Portal: target.Config.PortalName,
		Status: ExportStatusSuccess,
	}
}

// ErrorResult builds an error entry for a target
func ErrorResult(target ExportTarget, message string) ExportResult {
	return ExportResult{
		Agency:  target.AgencyName,
		Portal:  target.Config.PortalName,
		Status:  ExportStatusError,
		Message: message,
	}
}
