package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Protocol Errors (E201-E299)
	// ============================================

	"E201": {
		Category: CategoryProtocol,
		Message:  "Malformed event frame",
		Detail:   "The event frame could not be decoded.",
	},
	"E202": {
		Category: CategoryProtocol,
		Message:  "Unknown event type",
	},

	// ============================================
	// Config Errors (E301-E399)
	// ============================================

	"E301": {
		Category: CategoryConfig,
		Message:  "Config file not found",
	},
	"E302": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The config file is not valid JSON.",
	},
	"E303": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
	},

	// ============================================
	// CLI Errors (E401-E499)
	// ============================================

	"E401": {
		Category: CategoryCLI,
		Message:  "Unknown event target",
		Detail:   "The interaction target matches no element of the rendered page.",
	},
	"E402": {
		Category: CategoryCLI,
		Message:  "Invalid interaction",
		Detail:   "Interactions are written as type:target, e.g. mousedown:#text.",
	},
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
