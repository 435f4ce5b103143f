package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "formkit-form"
	ClassHeader  ChromeClass = "formkit-header"
	ClassFields  ChromeClass = "formkit-fields"
	ClassField   ChromeClass = "formkit-field"
	ClassActions ChromeClass = "formkit-actions"
	ClassErrors  ChromeClass = "formkit-errors"
)

// ChromeClasses overrides the chrome classes; empty entries keep defaults.
type ChromeClasses struct {
	Form    string
	Header  string
	Fields  string
	Field   string
	Actions string
	Errors  string
}

func (c ChromeClasses) resolve() map[string]string {
	pick := func(override string, fallback ChromeClass) string {
		if cls := sanitizeClassList(override); cls != "" {
			return string(fallback) + " " + cls
		}
		return string(fallback)
	}
	return map[string]string{
		"form":    pick(c.Form, ClassForm),
		"header":  pick(c.Header, ClassHeader),
		"fields":  pick(c.Fields, ClassFields),
		"field":   string(ClassField),
		"actions": pick(c.Actions, ClassActions),
		"errors":  pick(c.Errors, ClassErrors),
	}
}
