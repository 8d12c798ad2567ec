package frontend_domain

// CommonTemplateData holds fields that are common to all page templates.
// Available in templates as .Common via the TemplateData wrapper.
type CommonTemplateData struct {
	Error     string // failure notice from the previous request
	Success   string // success notice from the previous request
	CSRFToken string
	SignedIn  bool
	Routes    RouteData
}

// RouteData exposes the configured destinations to templates.
type RouteData struct {
	Entry   string
	Admin   string
	Default string
}
