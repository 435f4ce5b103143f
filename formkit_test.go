package formkit

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/posts"
	"github.com/goliatone/go-formkit/pkg/schema"
)

const contactSchema = `
id: contact
title: Contact us
fields:
  email:
    kind: string
    required: true
    email: true
  message:
    kind: string
`

func TestLoadSchema_Builtin(t *testing.T) {
	parsed, err := LoadSchema(context.Background(), schema.SourceFromBuiltin("doctor"), schema.WithBuiltins(posts.Builtins()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"name", "email", "password", "confirmPassword", "phone", "shortBio", "specialization", "experienceYears", "profileImage", "appointmentTime", "available"}
	if diff := cmp.Diff(want, parsed.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadSchema(context.Background(), schema.SourceFromBuiltin("doctor")); err == nil {
		t.Fatalf("expected error without a builtin filesystem")
	}
}

func TestGenerateHTMLFromDocument(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFS("contact.yaml"), []byte(contactSchema))
	html, err := GenerateHTMLFromDocument(context.Background(), doc, "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := string(html)
	for _, want := range []string{`name="email" type="email"`, `name="message"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestNewSession_SubmitsBuiltForm(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFS("contact.yaml"), []byte(contactSchema))
	form, err := NewOrchestrator().Build(context.Background(), orchestrator.Request{Document: &doc})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	session := NewSession(form, nil)
	defer session.Close()
	if err := session.Set("email", "dr.lina@example.com"); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got map[string]any
	if err := session.Submit(context.Background(), func(_ context.Context, values map[string]any) error {
		got = values
		return nil
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"email": "dr.lina@example.com", "message": ""}, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
}
