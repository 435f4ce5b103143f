package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Option configures a Validator.
type Option func(*Validator)

// WithNotBefore rejects datetime values earlier than t. Sessions pass the
// instant the form was rendered. Zone-less date text is read in t's
// location unless WithLocation says otherwise.
func WithNotBefore(t time.Time) Option {
	return func(v *Validator) {
		v.notBefore = t
		if v.loc == nil {
			v.loc = t.Location()
		}
	}
}

// WithLocation sets the zone used to read date text that carries no offset.
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) {
		if loc != nil {
			v.loc = loc
		}
	}
}

// Validator checks form values against the rules of a form model. Rules are
// compiled once per field.
type Validator struct {
	fields    map[string]model.Field
	order     []string
	rules     map[string][]ozzo.Rule
	notBefore time.Time
	loc       *time.Location
}

// New compiles the rules of every field in form.
func New(form model.FormModel, opts ...Option) *Validator {
	v := &Validator{
		fields: make(map[string]model.Field, len(form.Fields)),
		rules:  make(map[string][]ozzo.Rule, len(form.Fields)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	if v.loc == nil {
		v.loc = time.UTC
	}
	for _, field := range form.Fields {
		v.fields[field.Name] = field
		v.order = append(v.order, field.Name)
		v.rules[field.Name] = v.compile(field)
	}
	return v
}

// Field coerces and validates a single value. values supplies the other
// fields for cross-field rules. The returned messages are empty on success.
func (v *Validator) Field(name string, raw any, values map[string]any) (any, []string) {
	field, ok := v.fields[name]
	if !ok {
		return raw, nil
	}

	value, err := CoerceIn(field, raw, v.loc)
	if err != nil {
		return nil, []string{coercionMessage(field, err)}
	}

	rules := append([]ozzo.Rule(nil), v.rules[name]...)
	for _, ref := range refsOf(field) {
		rules = append(rules, v.equalsRule(field, ref, values))
	}
	if err := ozzo.Validate(value, rules...); err != nil {
		return nil, []string{err.Error()}
	}
	return value, nil
}

// Validate checks every field in form order. On success the returned map
// holds every field coerced to its kind.
func (v *Validator) Validate(values map[string]any) (map[string]any, FieldErrors) {
	out := make(map[string]any, len(v.order))
	errs := FieldErrors{}
	for _, name := range v.order {
		value, messages := v.Field(name, values[name], values)
		if len(messages) > 0 {
			errs[name] = messages
			continue
		}
		out[name] = value
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (v *Validator) compile(field model.Field) []ozzo.Rule {
	label := field.Label
	var rules []ozzo.Rule

	if field.Required {
		switch field.Kind {
		case schema.KindNumber, schema.KindBoolean:
			rules = append(rules, ozzo.NotNil.Error(label+" is required"))
		default:
			if widgets.IsUpload(field.Widget) {
				rules = append(rules, ozzo.NotNil.Error(label+" is required"))
			} else {
				rules = append(rules, ozzo.Required.Error(label+" is required"))
			}
		}
	}

	var minLen, maxLen int
	var hasLength bool
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleEmail:
			rules = append(rules, is.EmailFormat.Error(label+" must be a valid email address"))
		case model.ValidationRuleURL:
			rules = append(rules, is.URL.Error(label+" must be a valid URL"))
		case model.ValidationRuleMinLength:
			if n, err := strconv.Atoi(rule.Params["value"]); err == nil {
				minLen, hasLength = n, true
			}
		case model.ValidationRuleMaxLength:
			if n, err := strconv.Atoi(rule.Params["value"]); err == nil {
				maxLen, hasLength = n, true
			}
		case model.ValidationRuleMin:
			if bound, err := strconv.ParseFloat(rule.Params["value"], 64); err == nil {
				rules = append(rules, boundRule(func(n float64) bool { return n >= bound },
					fmt.Sprintf("%s must be at least %s", label, rule.Params["value"])))
			}
		case model.ValidationRuleMax:
			if bound, err := strconv.ParseFloat(rule.Params["value"], 64); err == nil {
				rules = append(rules, boundRule(func(n float64) bool { return n <= bound },
					fmt.Sprintf("%s must be at most %s", label, rule.Params["value"])))
			}
		case model.ValidationRulePattern:
			if re, err := regexp.Compile(rule.Params["pattern"]); err == nil {
				rules = append(rules, ozzo.Match(re).Error(label+" has an invalid format"))
			}
		}
	}
	if hasLength {
		rules = append(rules, lengthRule(field, minLen, maxLen))
	}

	if choices := choicesOf(field); len(choices) > 0 {
		in := ozzo.In(choices...).Error(label + " must be one of the available options")
		if field.Kind == schema.KindArray {
			rules = append(rules, ozzo.Each(in))
		} else {
			rules = append(rules, in)
		}
	}

	if field.Widget == widgets.DateTime && !v.notBefore.IsZero() {
		rules = append(rules, notBeforeRule(v.notBefore, v.loc, label+" cannot be in the past"))
	}
	return rules
}

func lengthRule(field model.Field, minLen, maxLen int) ozzo.Rule {
	unit := "characters"
	if field.Kind == schema.KindArray {
		unit = "items"
	}
	var msg string
	switch {
	case minLen > 0 && maxLen > 0:
		msg = fmt.Sprintf("%s must be between %d and %d %s", field.Label, minLen, maxLen, unit)
	case minLen > 0:
		msg = fmt.Sprintf("%s must be at least %d %s", field.Label, minLen, unit)
	default:
		msg = fmt.Sprintf("%s must be at most %d %s", field.Label, maxLen, unit)
	}
	if field.Kind == schema.KindArray {
		return ozzo.Length(minLen, maxLen).Error(msg)
	}
	return ozzo.RuneLength(minLen, maxLen).Error(msg)
}

func boundRule(ok func(float64) bool, msg string) ozzo.Rule {
	return ozzo.By(func(value any) error {
		n, isNumber := value.(float64)
		if !isNumber || ok(n) {
			return nil
		}
		return ozzo.NewError("validation_out_of_range", msg)
	})
}

func notBeforeRule(limit time.Time, loc *time.Location, msg string) ozzo.Rule {
	floor := limit.In(loc).Truncate(time.Minute)
	return ozzo.By(func(value any) error {
		var t time.Time
		switch typed := value.(type) {
		case time.Time:
			t = typed
		case string:
			parsed, ok := ParseTimeIn(typed, loc)
			if !ok {
				return nil
			}
			t = parsed
		default:
			return nil
		}
		if t.Before(floor) {
			return ozzo.NewError("validation_in_past", msg)
		}
		return nil
	})
}

func (v *Validator) equalsRule(field model.Field, ref string, values map[string]any) ozzo.Rule {
	other, ok := v.fields[ref]
	otherLabel := ref
	if ok {
		otherLabel = other.Label
	}
	return ozzo.By(func(value any) error {
		want := values[ref]
		if ok {
			if coerced, err := CoerceIn(other, want, v.loc); err == nil {
				want = coerced
			}
		}
		if reflect.DeepEqual(value, want) {
			return nil
		}
		return ozzo.NewError("validation_mismatch", fmt.Sprintf("%s must match %s", field.Label, otherLabel))
	})
}

func refsOf(field model.Field) []string {
	var refs []string
	for _, rule := range field.Validations {
		if rule.Kind == model.ValidationRuleEquals && rule.Params["field"] != "" {
			refs = append(refs, rule.Params["field"])
		}
	}
	return refs
}

func choicesOf(field model.Field) []any {
	var values []string
	if field.Widget == widgets.Select {
		values = field.Choices()
	} else {
		values = field.Enum
	}
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}
	return out
}

func coercionMessage(field model.Field, err error) string {
	switch err {
	case errNotNumber:
		return field.Label + " must be a number"
	case errNotBoolean:
		return field.Label + " must be true or false"
	case errNotDate:
		return field.Label + " must be a valid date"
	case errNotList:
		return field.Label + " must be a list of text values"
	default:
		return field.Label + " is invalid"
	}
}
