package validation

import (
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/schema"
)

func buildForm(t *testing.T, fields ...schema.Field) model.FormModel {
	t.Helper()
	form, err := model.NewBuilder().Build(schema.New("test", fields...), nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return form
}

func userForm(t *testing.T) model.FormModel {
	return buildForm(t,
		schema.Field{Key: "name", Descriptor: schema.FieldDescriptor{Kind: schema.KindString, Rules: schema.Rules{Required: true}}},
		schema.Field{Key: "age", Descriptor: schema.FieldDescriptor{Kind: schema.KindNumber}},
		schema.Field{Key: "role", Descriptor: schema.FieldDescriptor{Kind: schema.KindString, Allow: []any{"admin", "user"}}},
	)
}

func TestValidate_HappyPathCoercesKinds(t *testing.T) {
	v := New(userForm(t))
	got, errs := v.Validate(map[string]any{"name": "Alice", "age": "30", "role": "user"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := map[string]any{"name": "Alice", "age": 30.0, "role": "user"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RequiredMessageUsesLabel(t *testing.T) {
	v := New(userForm(t))
	got, errs := v.Validate(map[string]any{"name": "", "age": 0, "role": "user"})
	if got != nil {
		t.Fatalf("expected no values on failure, got %v", got)
	}
	if diff := cmp.Diff(FieldErrors{"name": {"Name is required"}}, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RuleMessages(t *testing.T) {
	minLen, maxLen := 3, 5
	minAge, maxAge := 18.0, 99.0
	form := buildForm(t,
		schema.Field{Key: "authorEmail", Descriptor: schema.FieldDescriptor{Kind: schema.KindString, Rules: schema.Rules{Email: true}}},
		schema.Field{Key: "website", Descriptor: schema.FieldDescriptor{Kind: schema.KindString, Rules: schema.Rules{URL: true}}},
		schema.Field{Key: "code", Descriptor: schema.FieldDescriptor{Kind: schema.KindString, Rules: schema.Rules{MinLength: &minLen, MaxLength: &maxLen}}},
		schema.Field{Key: "age", Descriptor: schema.FieldDescriptor{Kind: schema.KindNumber, Rules: schema.Rules{Min: &minAge, Max: &maxAge}}},
		schema.Field{Key: "sku", Descriptor: schema.FieldDescriptor{Kind: schema.KindString, Rules: schema.Rules{Pattern: `^[A-Z]{3}-\d+$`}}},
		schema.Field{Key: "role", Descriptor: schema.FieldDescriptor{Kind: schema.KindString, Allow: []any{"admin", "user"}}},
		schema.Field{Key: "count", Descriptor: schema.FieldDescriptor{Kind: schema.KindNumber}},
	)
	v := New(form)

	cases := []struct {
		field string
		value any
		want  string
	}{
		{"authorEmail", "nope", "Author Email must be a valid email address"},
		{"website", "not a url", "Website must be a valid URL"},
		{"code", "ab", "Code must be between 3 and 5 characters"},
		{"age", 0, "Age must be at least 18"},
		{"age", "120", "Age must be at most 99"},
		{"sku", "abc", "Sku has an invalid format"},
		{"role", "root", "Role must be one of the available options"},
		{"count", "many", "Count must be a number"},
	}
	for _, tc := range cases {
		_, msgs := v.Field(tc.field, tc.value, nil)
		if diff := cmp.Diff([]string{tc.want}, msgs); diff != "" {
			t.Fatalf("%s=%v messages mismatch (-want +got):\n%s", tc.field, tc.value, diff)
		}
	}

	if _, msgs := v.Field("authorEmail", "", nil); len(msgs) != 0 {
		t.Fatalf("optional empty email should pass, got %v", msgs)
	}
}

func TestValidate_ConfirmPasswordMustMatch(t *testing.T) {
	form := buildForm(t,
		schema.Field{Key: "password", Descriptor: schema.FieldDescriptor{Kind: schema.KindString, Rules: schema.Rules{Required: true}}},
		schema.Field{Key: "confirmPassword", Descriptor: schema.FieldDescriptor{Kind: schema.KindString, Valid: []any{schema.Ref{Field: "password"}}}},
	)
	v := New(form)

	_, errs := v.Validate(map[string]any{"password": "s3cret", "confirmPassword": "other"})
	if errs.First("confirmPassword") != "Confirm Password must match Password" {
		t.Fatalf("unexpected errors %v", errs)
	}
	if _, errs := v.Validate(map[string]any{"password": "s3cret", "confirmPassword": "s3cret"}); len(errs) != 0 {
		t.Fatalf("expected match to pass, got %v", errs)
	}
}

func TestValidate_ArrayAndDates(t *testing.T) {
	form := buildForm(t,
		schema.Field{Key: "tags", Descriptor: schema.FieldDescriptor{Kind: schema.KindArray, Rules: schema.Rules{Required: true}}},
		schema.Field{Key: "birthday", Descriptor: schema.FieldDescriptor{Kind: schema.KindDate}},
		schema.Field{Key: "publishTime", Descriptor: schema.FieldDescriptor{Kind: schema.KindDate}},
	)
	renderedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	v := New(form, WithNotBefore(renderedAt))

	if _, msgs := v.Field("tags", []any{}, nil); len(msgs) != 1 || msgs[0] != "Tags is required" {
		t.Fatalf("expected required tags error, got %v", msgs)
	}
	got, msgs := v.Field("birthday", "1990-04-02", nil)
	if len(msgs) != 0 || !got.(time.Time).Equal(time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected birthday coercion %v %v", got, msgs)
	}
	if _, msgs := v.Field("publishTime", "2026-02-28T09:00", nil); len(msgs) != 1 || msgs[0] != "Publish Time cannot be in the past" {
		t.Fatalf("expected past datetime rejection, got %v", msgs)
	}
	if _, msgs := v.Field("publishTime", "2026-03-02T09:00", nil); len(msgs) != 0 {
		t.Fatalf("expected future datetime to pass, got %v", msgs)
	}
}

func TestCoerce(t *testing.T) {
	boolField := model.Field{Name: "featured", Kind: schema.KindBoolean}
	for raw, want := range map[string]bool{"on": true, "true": true, "": false, "0": false} {
		got, err := Coerce(boolField, raw)
		if err != nil || got != want {
			t.Fatalf("Coerce(bool, %q) = %v, %v", raw, got, err)
		}
	}

	arrayField := model.Field{Name: "tags", Kind: schema.KindArray}
	got, err := Coerce(arrayField, []any{"a", "b"})
	if err != nil {
		t.Fatalf("coerce array: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("array mismatch (-want +got):\n%s", diff)
	}
	if _, err := Coerce(arrayField, []any{1}); err == nil {
		t.Fatalf("expected non-string array members to fail")
	}
}

func TestValidate_NotBeforeUsesRenderZone(t *testing.T) {
	form := buildForm(t,
		schema.Field{Key: "appointmentTime", Descriptor: schema.FieldDescriptor{Kind: schema.KindDate}},
	)
	cases := []struct {
		name   string
		zone   *time.Location
		value  string
		reject bool
	}{
		{"behind utc, later same day", time.FixedZone("EDT", -4*3600), "2026-05-10T10:00", false},
		{"behind utc, advertised minimum", time.FixedZone("EDT", -4*3600), "2026-05-10T08:30", false},
		{"behind utc, earlier", time.FixedZone("EDT", -4*3600), "2026-05-10T08:29", true},
		{"ahead of utc, earlier", time.FixedZone("JST", 9*3600), "2026-05-10T08:00", true},
		{"ahead of utc, minimum", time.FixedZone("JST", 9*3600), "2026-05-10T08:30", false},
		{"explicit offset", time.FixedZone("JST", 9*3600), "2026-05-09T23:31:00Z", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			renderedAt := time.Date(2026, 5, 10, 8, 30, 20, 0, tc.zone)
			v := New(form, WithNotBefore(renderedAt))
			_, msgs := v.Field("appointmentTime", tc.value, nil)
			if tc.reject && (len(msgs) != 1 || msgs[0] != "Appointment Time cannot be in the past") {
				t.Fatalf("expected %q to be rejected, got %v", tc.value, msgs)
			}
			if !tc.reject && len(msgs) != 0 {
				t.Fatalf("expected %q to pass, got %v", tc.value, msgs)
			}
		})
	}
}

func TestCoerce_ParsesWallClockInLocation(t *testing.T) {
	zone := time.FixedZone("EDT", -4*3600)
	field := model.Field{Name: "appointmentTime", Kind: schema.KindDate}
	got, err := CoerceIn(field, "2026-05-10T10:00", zone)
	if err != nil {
		t.Fatalf("coerce: %v", err)
	}
	if want := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC); !got.(time.Time).Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCoerce_NumberTypes(t *testing.T) {
	field := model.Field{Name: "experienceYears", Kind: schema.KindNumber}
	type years uint16
	for _, raw := range []any{int8(7), int16(7), int(7), uint32(7), uint64(7), float32(7), years(7), gojson.Number("7"), " 7 "} {
		got, err := Coerce(field, raw)
		if err != nil || got != 7.0 {
			t.Fatalf("Coerce(number, %T %v) = %v, %v", raw, raw, got, err)
		}
	}
	for _, raw := range []any{gojson.Number("seven"), true, []int{7}} {
		if _, err := Coerce(field, raw); err == nil {
			t.Fatalf("expected %T %v to be rejected", raw, raw)
		}
	}
}
