package main

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const lintFixture = `
openapi: 3.0.3
info: {title: Clinic, version: 1.0.0}
paths:
  /doctors:
    post:
      operationId: createDoctor
      requestBody:
        content:
          application/json:
            schema:
              type: object
              x-formkit-order: [name, phone]
              properties:
                name: {type: string, x-formkit-widget: slider}
      responses:
        "201": {description: created}
components:
  schemas:
    Signup:
      type: object
      x-formkit-order: [email, password]
      properties:
        email: {type: string, x-formkit-label: 42}
        password: {type: string}
        confirmPassword: {type: string, x-formkit-equals: passwd, x-formkit-hint: nope}
`

func TestLintDocument(t *testing.T) {
	got, err := lintDocument(context.Background(), "clinic.yaml", []byte(lintFixture))
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	messages := make([]string, len(got))
	for i, v := range got {
		messages[i] = v.location + ": " + v.message
	}

	want := []string{
		`components > Signup > properties.confirmPassword: unsupported extension "x-formkit-hint"`,
		`components > Signup > properties.confirmPassword: x-formkit-equals references unknown property "passwd"`,
		`components > Signup > properties.email: x-formkit-label must be a string, found float64`,
		`operation > createDoctor > application/json: x-formkit-order names unknown property "phone"`,
		`operation > createDoctor > application/json > properties.name: unknown widget "slider" (supported: text, email, password, number, textarea, select, checkbox, array, datetime, date, file, video, pdf)`,
	}
	if diff := cmp.Diff(want, messages); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestLintDocument_Clean(t *testing.T) {
	doc := `
openapi: 3.0.3
info: {title: Clinic, version: 1.0.0}
paths: {}
components:
  schemas:
    Signup:
      type: object
      x-formkit-order: [email]
      properties:
        email: {type: string, x-formkit-widget: email, x-formkit-label: Work email}
`
	got, err := lintDocument(context.Background(), "clinic.yaml", []byte(doc))
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}
