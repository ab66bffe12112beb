package email

// PreviewData contains sample template data for local preview/testing,
// keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName": "Somchai",
	},
}
