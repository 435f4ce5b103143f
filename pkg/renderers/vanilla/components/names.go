package components

// Canonical component names used by the vanilla renderer and default registry.
const (
	NameInput    = "input"
	NamePassword = "password"
	NameTextarea = "textarea"
	NameSelect   = "select"
	NameCheckbox = "checkbox"
	NameArray    = "array"
	NameFile     = "file"
	NameDateTime = "datetime"
)
