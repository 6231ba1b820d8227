package port

// ErrorSink receives non-fatal diagnostics.
type ErrorSink interface {
	LogError(category, message string)
}
