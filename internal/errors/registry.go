package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Routing Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryRoute,
		Message:  "Route not found",
	},
	"E101": {
		Category: CategoryRoute,
		Message:  "Route parameter type mismatch",
		Detail:   "A route parameter couldn't be converted to the expected type.",
	},
	"E102": {
		Category: CategoryRoute,
		Message:  "Invalid route path",
	},
	"E103": {
		Category: CategoryLoad,
		Message:  "Invalid route file",
		Detail:   "The route file doesn't export a handler with a supported signature.",
	},
	"E104": {
		Category: CategoryRoute,
		Message:  "Duplicate route",
		Detail:   "Two routes resolve to the same concrete path.",
	},
	"E105": {
		Category: CategoryLoad,
		Message:  "Route file not found",
	},
	"E106": {
		Category: CategoryLoad,
		Message:  "Route file failed to load",
	},
	"E107": {
		Category: CategoryRoute,
		Message:  "Static params generator failed",
	},
	"E108": {
		Category: CategoryRender,
		Message:  "Render failed",
	},
	"E109": {
		Category: CategoryLoad,
		Message:  "Forbidden import in route script",
	},

	// ============================================
	// Configuration Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid routeshell.yaml",
		Detail:   "The configuration file is malformed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Not a routeshell project",
		Detail:   "No routeshell.yaml was found in this directory or any parent directory.",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Inspector failed",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Project already exists",
		Detail:   "The target directory already contains a routeshell.yaml.",
	},
	"E142": {
		Category: CategoryCLI,
		Message:  "Terminal shell failed",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
