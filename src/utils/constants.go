package utils

const ShortSlashDateLayout = "2006/01/02"
const ShortDashDateLayout = "2006-01-02"

const (
	DefaultRequestTimeoutSeconds = 10
	ImportRequestTimeoutSeconds  = 120
)
