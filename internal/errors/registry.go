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
	// Engine Errors (V001-V049)
	// ============================================

	"V001": {
		Category: CategoryEngine,
		Message:  "Invalid node type",
		Detail:   "A node can only be created from a tag name (string) or a *vdom.ComponentType.",
	},
	"V002": {
		Category: CategoryEngine,
		Message:  "Mixed keyed and unkeyed children",
		Detail:   "Children of one parent must either all carry a key or none of them. Matching by position inside a keyed list picks the wrong node.",
	},
	"V003": {
		Category: CategoryEngine,
		Message:  "Node is not linked to an output artifact",
		Detail:   "The node was never mounted, or was already destroyed. Only mounted nodes can be updated or destroyed.",
	},
	"V004": {
		Category: CategoryEngine,
		Message:  "Artifact already detached",
		Detail:   "The artifact was removed from its parent by something other than the engine. Lifecycle hooks still ran; removal was skipped.",
	},
	"V005": {
		Category: CategoryEngine,
		Message:  "Duplicate key",
		Detail:   "Two siblings in a keyed list carry the same key.",
	},
	"V006": {
		Category: CategoryEngine,
		Message:  "Invalid event handler",
		Detail:   "Event props (on*) accept func(*vdom.Event), func() or a vdom.EventListener.",
	},
	"V007": {
		Category: CategoryEngine,
		Message:  "Component render failed",
		Detail:   "Render returned a nil node or reconciliation of the rendered output failed.",
	},
	"V008": {
		Category: CategoryEngine,
		Message:  "Node already mounted",
		Detail:   "A node descriptor can be mounted once. Clone it to render the same description in a second place.",
	},

	// ============================================
	// State Errors (V050-V069)
	// ============================================

	"V050": {
		Category: CategoryState,
		Message:  "State update on unmounted component",
		Detail:   "SetState was called on a component that is not mounted (before mount or after unmount).",
	},

	// ============================================
	// Protocol Errors (V070-V089)
	// ============================================

	"V070": {
		Category: CategoryProtocol,
		Message:  "Invalid message format",
		Detail:   "The received frame could not be decoded.",
	},
	"V071": {
		Category: CategoryProtocol,
		Message:  "Unknown event target",
		Detail:   "The event refers to a node id that is not part of the session document.",
	},

	// ============================================
	// Config Errors (C001-C019)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be read or parsed.",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or malformed.",
	},

	// ============================================
	// CLI Errors (C020-C039)
	// ============================================

	"C020": {
		Category: CategoryCLI,
		Message:  "Snapshot store not configured",
		Detail:   "The snapshot command needs a bucket or a directory to write to.",
	},
	"C021": {
		Category: CategoryCLI,
		Message:  "Snapshot upload failed",
		Detail:   "The rendered document could not be written to the snapshot store.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
