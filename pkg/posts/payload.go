package posts

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	goerrors "github.com/goliatone/go-errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const payloadSchemaName = "payload.schema.json"

// ErrInvalidPayload marks payloads rejected by the post schema.
var ErrInvalidPayload = errors.New("posts: invalid payload")

// Issue is one schema violation, located by JSON pointer.
type Issue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

var (
	payloadSchemaOnce sync.Once
	payloadSchema     *jsonschema.Schema
	payloadSchemaErr  error
)

func compiledPayloadSchema() (*jsonschema.Schema, error) {
	payloadSchemaOnce.Do(func() {
		raw, err := schemaFiles.ReadFile("schemas/" + payloadSchemaName)
		if err != nil {
			payloadSchemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(payloadSchemaName, bytes.NewReader(raw)); err != nil {
			payloadSchemaErr = err
			return
		}
		payloadSchema, payloadSchemaErr = compiler.Compile(payloadSchemaName)
	})
	return payloadSchema, payloadSchemaErr
}

// Encode renders data in its wire form.
func Encode(data CreatePostData) ([]byte, error) {
	out, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("posts: encode payload: %w", err)
	}
	return out, nil
}

// ValidatePayload checks the encoded payload against the post schema: both
// title languages must be filled and the English content needs at least one
// block. Failures carry the located issues as validation metadata.
func ValidatePayload(data CreatePostData) ([]Issue, error) {
	compiled, err := compiledPayloadSchema()
	if err != nil {
		return nil, fmt.Errorf("posts: compile payload schema: %w", err)
	}
	encoded, err := Encode(data)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("posts: decode payload: %w", err)
	}

	err = compiled.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, fmt.Errorf("posts: validate payload: %w", err)
	}
	issues := collectIssues(validationErr)
	locations := make([]string, len(issues))
	for i, issue := range issues {
		locations[i] = issue.Location
	}
	return issues, goerrors.Wrap(ErrInvalidPayload, goerrors.CategoryValidation, "post payload failed schema validation").
		WithTextCode("POST_PAYLOAD_INVALID").
		WithMetadata(map[string]any{"locations": locations})
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	seen := map[string]struct{}{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "/"
			}
			key := location + "\x00" + node.Message
			if _, dup := seen[key]; dup {
				return
			}
			seen[key] = struct{}{}
			issues = append(issues, Issue{Location: location, Message: strings.TrimSpace(node.Message)})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Location < issues[j].Location })
	return issues
}

// IssueErrors groups issue messages by location in the shape
// render.MapErrorPayload accepts. Root-level issues land under "form".
func IssueErrors(issues []Issue) map[string][]string {
	if len(issues) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range issues {
		key := issue.Location
		if key == "/" {
			key = "form"
		}
		out[key] = append(out[key], issue.Message)
	}
	return out
}
