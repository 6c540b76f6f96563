package errors

// -----------------------------------------------------------------------------
// Configuration Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = "CONFIG_NOT_FOUND"

	// ErrConfigParseFailed indicates the configuration file is not valid YAML.
	ErrConfigParseFailed = "CONFIG_PARSE_FAILED"

	// ErrConfigInvalid indicates configuration values are out of range.
	ErrConfigInvalid = "CONFIG_INVALID"

	// ErrConfigWriteFailed indicates the configuration file could not be written.
	ErrConfigWriteFailed = "CONFIG_WRITE_FAILED"
)

// -----------------------------------------------------------------------------
// Request Validation Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrRequestMissingFields indicates the report name or type is absent.
	ErrRequestMissingFields = "REQUEST_MISSING_FIELDS"

	// ErrRequestInvalidType indicates the report type is not a known type.
	ErrRequestInvalidType = "REQUEST_INVALID_TYPE"

	// ErrRequestInvalidPeriod indicates malformed dates or an end before the start.
	ErrRequestInvalidPeriod = "REQUEST_INVALID_PERIOD"

	// ErrRequestInvalidRecipient indicates a distribution list entry is not an email address.
	ErrRequestInvalidRecipient = "REQUEST_INVALID_RECIPIENT"

	// ErrReportNotFound indicates no recent report has the given name.
	ErrReportNotFound = "REPORT_NOT_FOUND"
)

// -----------------------------------------------------------------------------
// Render Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrRenderDefect indicates the layout overflowed its template and strict mode is on.
	ErrRenderDefect = "RENDER_DEFECT"

	// ErrRenderFailed indicates a renderer could not serialize the pages.
	ErrRenderFailed = "RENDER_FAILED"

	// ErrRenderUnsupportedFormat indicates no renderer exists for the format.
	ErrRenderUnsupportedFormat = "RENDER_UNSUPPORTED_FORMAT"
)

// -----------------------------------------------------------------------------
// Sink Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrSinkDownloadFailed indicates the document could not be delivered.
	ErrSinkDownloadFailed = "SINK_DOWNLOAD_FAILED"

	// ErrSinkClipboardFailed indicates the share URL could not be copied.
	ErrSinkClipboardFailed = "SINK_CLIPBOARD_FAILED"
)

// -----------------------------------------------------------------------------
// Workflow Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrRunCancelled indicates the deferred generation was cancelled before its side effect.
	ErrRunCancelled = "RUN_CANCELLED"

	// ErrInputAborted indicates the interactive form was aborted by the user.
	ErrInputAborted = "INPUT_ABORTED"
)
