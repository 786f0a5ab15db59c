package utils

const (
	// LoggerInitializationFailedMessageFormat reports a logger that could not be constructed.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors that lack their own wording.
	ApplicationExecutionFailedMessage = "Error"
)
