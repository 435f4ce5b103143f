package components

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/widgets"
)

func noopRenderer(*bytes.Buffer, FieldView, ComponentData) error { return nil }

func TestRegistryRegisterAndBind(t *testing.T) {
	reg := New()
	if err := reg.Register("Test", Descriptor{Renderer: noopRenderer, Widgets: []widgets.Kind{"color"}, Stylesheets: []string{"/a.css"}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	desc, ok := reg.Descriptor("test")
	if !ok {
		t.Fatalf("descriptor not found")
	}
	desc.Stylesheets = append(desc.Stylesheets, "/mutated.css")

	original, _ := reg.Descriptor("test")
	if diff := cmp.Diff([]string{"/a.css"}, original.Stylesheets); diff != "" {
		t.Fatalf("registry descriptor mutated (-want +got):\n%s", diff)
	}
	if err := reg.Register("broken", Descriptor{}); err == nil {
		t.Fatalf("expected nil renderer to be rejected")
	}
	if got := reg.ForWidget("color"); got != "test" {
		t.Fatalf("expected color bound to test, got %q", got)
	}
	if got := reg.ForWidget(widgets.Text); got != NameInput {
		t.Fatalf("expected unbound widget to fall back to input, got %q", got)
	}
	if err := reg.Bind(widgets.Select, "missing"); err == nil {
		t.Fatalf("expected binding to unknown component to fail")
	}
}

func TestRegistryAssetsDeduplicates(t *testing.T) {
	reg := New()
	reg.MustRegister("input", Descriptor{
		Renderer:    noopRenderer,
		Stylesheets: []string{"/shared.css", "/input.css"},
		Scripts:     []Script{{Src: "/shared.js"}},
	})
	reg.MustRegister("select", Descriptor{
		Renderer:    noopRenderer,
		Stylesheets: []string{"/shared.css", "/select.css"},
		Scripts:     []Script{{Src: "/shared.js"}, {Src: "/select.js"}},
	})

	styles, scripts := reg.Assets([]string{"input", "select"})
	if diff := cmp.Diff([]string{"/shared.css", "/input.css", "/select.css"}, styles); diff != "" {
		t.Fatalf("styles mismatch (-want +got):\n%s", diff)
	}
	if len(scripts) != 2 {
		t.Fatalf("expected 2 unique scripts, got %d: %v", len(scripts), scripts)
	}
}

func TestDefaultRegistryCoversWidgets(t *testing.T) {
	reg := NewDefaultRegistry()
	want := []string{NameArray, NameCheckbox, NameDateTime, NameFile, NameInput, NamePassword, NameSelect, NameTextarea}
	if diff := cmp.Diff(want, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	cases := map[widgets.Kind]string{
		widgets.Text:     NameInput,
		widgets.Email:    NameInput,
		widgets.Number:   NameInput,
		widgets.Date:     NameInput,
		widgets.Password: NamePassword,
		widgets.Video:    NameFile,
		widgets.PDF:      NameFile,
		widgets.DateTime: NameDateTime,
	}
	for kind, name := range cases {
		if got := reg.ForWidget(kind); got != name {
			t.Fatalf("%s: expected %s, got %s", kind, name, got)
		}
	}

	if err := reg.Bind(widgets.Date, NameDateTime); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if got := reg.ForWidget(widgets.Date); got != NameDateTime {
		t.Fatalf("expected rebinding to win, got %q", got)
	}
}
