package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	gotheme "github.com/goliatone/go-theme"

	internalParser "github.com/goliatone/go-formkit/internal/openapi/parser"
	internalLoader "github.com/goliatone/go-formkit/internal/schema/loader"
	"github.com/goliatone/go-formkit/pkg/engine"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/model"
	pkgopenapi "github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/posts"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// sourceFlags select the schema and the adapter input shared by render and
// fill.
type sourceFlags struct {
	source     string
	builtin    string
	target     string
	format     string
	values     string
	categories string
	locale     string
}

func (s *sourceFlags) register(fs *flag.FlagSet, env *environment) {
	fs.StringVar(&s.source, "source", "", "schema file path or URL")
	fs.StringVar(&s.builtin, "builtin", "", "built-in schema name ("+strings.Join(posts.BuiltinNames(), ", ")+")")
	fs.StringVar(&s.target, "target", "", "OpenAPI component or operation id")
	fs.StringVar(&s.format, "format", "", "input format (schema, openapi); detected when empty")
	fs.StringVar(&s.values, "values", "", "JSON file with default values")
	fs.StringVar(&s.categories, "categories", "", "JSON file with categories for the category select")
	fs.StringVar(&s.locale, "locale", env.cfg.Render.Locale, "label language (en, ar)")
}

func (s *sourceFlags) request() (orchestrator.Request, map[string]any, error) {
	src, err := s.schemaSource()
	if err != nil {
		return orchestrator.Request{}, nil, err
	}
	req := orchestrator.Request{
		Source: src,
		Format: s.format,
		Target: s.target,
	}

	if s.categories != "" {
		var categories []posts.Category
		if err := readJSON(s.categories, &categories); err != nil {
			return orchestrator.Request{}, nil, err
		}
		lang, ok := i18n.Parse(s.locale)
		if !ok {
			lang = i18n.Default
		}
		req.SelectOptions = posts.FormOptions(categories, lang)
	}

	var defaults map[string]any
	if s.values != "" {
		if err := readJSON(s.values, &defaults); err != nil {
			return orchestrator.Request{}, nil, err
		}
	}
	return req, defaults, nil
}

func (s *sourceFlags) schemaSource() (schema.Source, error) {
	switch {
	case s.source != "" && s.builtin != "":
		return nil, errors.New("use either -source or -builtin")
	case s.builtin != "":
		return schema.SourceFromBuiltin(s.builtin), nil
	case s.source != "":
		return parseSource(s.source), nil
	default:
		return nil, errors.New("a schema is required (-source or -builtin)")
	}
}

func parseSource(raw string) schema.Source {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return schema.SourceFromURL(path)
	}
	return schema.SourceFromFile(path)
}

func readJSON(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func newLoader(env *environment) schema.Loader {
	return internalLoader.New(schema.NewLoaderOptions(
		schema.WithBuiltins(posts.Builtins()),
		schema.WithHTTPFallback(env.cfg.Schema.HTTPTimeout),
	))
}

func newOrchestrator(env *environment) (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{
		orchestrator.WithLogger(env.logger),
		orchestrator.WithLoader(newLoader(env)),
	}

	if preset := env.cfg.Schema.Preset; preset != "" {
		transformer, err := orchestrator.NewJSONPresetTransformerFromFS(os.DirFS("."), preset)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithSchemaTransformer(transformer))
	}

	if dir := env.cfg.Theme.Dir; dir != "" {
		manifest, err := gotheme.LoadDir(os.DirFS(dir), ".")
		if err != nil {
			return nil, fmt.Errorf("load theme %s: %w", dir, err)
		}
		if env.cfg.Theme.Name != "" {
			manifest.Name = env.cfg.Theme.Name
		}
		registry := gotheme.NewRegistry()
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("register theme %s: %w", manifest.Name, err)
		}
		options = append(options, orchestrator.WithThemeProvider(registry, manifest.Name, env.cfg.Theme.Variant))
	}
	return orchestrator.New(options...), nil
}

func runRender(ctx context.Context, env *environment, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	var sf sourceFlags
	sf.register(fs, env)
	output := fs.String("output", "", "output file (stdout if empty)")
	action := fs.String("action", "", "form action URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req, defaults, err := sf.request()
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(env)
	if err != nil {
		return err
	}
	req.Renderer = "vanilla"
	req.ThemeName = env.cfg.Theme.Name
	req.ThemeVariant = env.cfg.Theme.Variant
	req.RenderOptions = render.RenderOptions{
		Action: *action,
		Values: defaults,
		Locale: sf.locale,
	}

	html, err := orch.Generate(ctx, req)
	if err != nil {
		return err
	}
	return writeOutput(*output, html)
}

func runFill(ctx context.Context, env *environment, args []string) error {
	fs := flag.NewFlagSet("fill", flag.ContinueOnError)
	var sf sourceFlags
	sf.register(fs, env)
	output := fs.String("output", "", "output file (stdout if empty)")
	outputFormat := fs.String("output-format", env.cfg.Render.Output, "payload format (json, form, pretty)")
	publish := fs.Bool("publish", false, "create the filled post through the API")
	contentEN := fs.String("content-en", "", "markdown file with the English body (with -publish)")
	contentAR := fs.String("content-ar", "", "markdown file with the Arabic body (with -publish)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req, defaults, err := sf.request()
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(env)
	if err != nil {
		return err
	}
	form, err := orch.Build(ctx, req)
	if err != nil {
		return err
	}
	renderer, err := tui.New(
		tui.WithLogger(env.logger),
		tui.WithOutputFormat(tui.OutputFormat(*outputFormat)),
	)
	if err != nil {
		return err
	}
	opts := render.RenderOptions{Values: defaults, Locale: sf.locale}

	if !*publish {
		payload, err := renderer.Render(ctx, form, opts)
		if err != nil {
			return err
		}
		return writeOutput(*output, payload)
	}

	render.LocalizeFormModel(&form, opts)
	session := engine.NewSession(form, defaults, engine.WithLogger(env.logger))
	defer session.Close()
	values, err := renderer.Fill(ctx, session, opts)
	if err != nil {
		return err
	}

	draft, err := importMarkdown(*contentEN, *contentAR)
	if err != nil {
		return err
	}
	data, err := posts.Assemble(values, draft.Content)
	if err != nil {
		return err
	}
	post, err := publishPost(ctx, env, form, data)
	if err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(*output, encoded)
}

func runTargets(ctx context.Context, env *environment, args []string) error {
	fs := flag.NewFlagSet("targets", flag.ContinueOnError)
	source := fs.String("source", "", "OpenAPI document path or URL")
	validate := fs.Bool("validate", false, "validate the document and allow external references")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*source) == "" {
		return errors.New("-source is required")
	}

	doc, err := newLoader(env).Load(ctx, parseSource(*source))
	if err != nil {
		return err
	}
	parser := internalParser.New(pkgopenapi.NewParserOptions(pkgopenapi.WithReferenceResolution(*validate)))
	targets, err := parser.Targets(ctx, doc)
	if err != nil {
		return err
	}
	for _, target := range targets {
		fmt.Println(target)
	}
	return nil
}

func runImport(ctx context.Context, env *environment, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	contentEN := fs.String("en", "", "English markdown file with frontmatter")
	contentAR := fs.String("ar", "", "Arabic markdown file with frontmatter")
	output := fs.String("output", "", "output file (stdout if empty)")
	publish := fs.Bool("publish", false, "create the imported post through the API")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *contentEN == "" && *contentAR == "" {
		return errors.New("at least one of -en or -ar is required")
	}

	data, err := importMarkdown(*contentEN, *contentAR)
	if err != nil {
		return err
	}
	if issues, err := posts.ValidatePayload(data); err != nil {
		reportIssues(issues)
		return err
	}

	if *publish {
		form, err := orchestrator.New(orchestrator.WithLogger(env.logger)).Build(ctx, orchestrator.Request{
			Source: schema.SourceFromBuiltin(posts.SchemaPost),
		})
		if err != nil {
			return err
		}
		post, err := publishPost(ctx, env, form, data)
		if err != nil {
			return err
		}
		encoded, err := json.MarshalIndent(post, "", "  ")
		if err != nil {
			return err
		}
		return writeOutput(*output, encoded)
	}

	encoded, err := posts.Encode(data)
	if err != nil {
		return err
	}
	return writeOutput(*output, encoded)
}

func importMarkdown(en, ar string) (posts.CreatePostData, error) {
	sources := make(map[i18n.Language][]byte, 2)
	for lang, path := range map[i18n.Language]string{i18n.English: en, i18n.Arabic: ar} {
		if path == "" {
			continue
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return posts.CreatePostData{}, fmt.Errorf("read %s: %w", path, err)
		}
		sources[lang] = raw
	}
	return posts.ImportMarkdown(sources)
}

func publishPost(ctx context.Context, env *environment, form model.FormModel, data posts.CreatePostData) (posts.Post, error) {
	if env.cfg.API.BaseURL == "" {
		return posts.Post{}, errors.New("api.base_url is not configured")
	}
	if issues, err := posts.ValidatePayload(data); err != nil {
		reportIssues(issues)
		return posts.Post{}, err
	}

	options := []posts.ClientOption{
		posts.WithHTTPClient(&http.Client{Timeout: env.cfg.API.Timeout}),
		posts.WithClientLogger(env.logger),
	}
	if token := env.cfg.API.Token; token != "" {
		options = append(options, posts.WithHeader("Authorization", "Bearer "+token))
	}
	client, err := posts.NewClient(env.cfg.API.BaseURL, options...)
	if err != nil {
		return posts.Post{}, err
	}

	post, err := client.CreatePost(ctx, data)
	var apiErr *posts.APIError
	if errors.As(err, &apiErr) {
		reportMapping(apiErr.Mapping(form))
	}
	return post, err
}

func reportIssues(issues []posts.Issue) {
	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", issue.Location, issue.Message)
	}
}

func reportMapping(mapping render.ErrorMapping) {
	for _, message := range mapping.Form {
		fmt.Fprintf(os.Stderr, "  %s\n", message)
	}
	keys := make([]string, 0, len(mapping.Fields))
	for key := range mapping.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", key, strings.Join(mapping.Fields[key], "; "))
	}
}
