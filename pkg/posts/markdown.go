package posts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-formkit/pkg/blocks"
	"github.com/goliatone/go-formkit/pkg/i18n"
)

type frontMatter struct {
	Title       string   `yaml:"title" json:"title" toml:"title"`
	AuthorName  string   `yaml:"author" json:"author" toml:"author"`
	AuthorEmail string   `yaml:"email" json:"email" toml:"email"`
	Image       string   `yaml:"image" json:"image" toml:"image"`
	Category    string   `yaml:"category" json:"category" toml:"category"`
	Tags        []string `yaml:"tags" json:"tags" toml:"tags"`
	Status      string   `yaml:"status" json:"status" toml:"status"`
	Featured    bool     `yaml:"featured" json:"featured" toml:"featured"`
}

// ImportMarkdown builds a post draft from one markdown document per
// language. Each document carries its own title in frontmatter; author,
// image, category, tags, status and featured are read from the first
// document that sets them, English first.
func ImportMarkdown(sources map[i18n.Language][]byte) (CreatePostData, error) {
	data := CreatePostData{
		Title:   i18n.Localized("", ""),
		Content: blocks.LocalizedContent{EN: blocks.Sequence{}, AR: blocks.Sequence{}},
		Tags:    []string{},
		Status:  StatusDraft,
	}

	for _, lang := range i18n.Supported {
		src, ok := sources[lang]
		if !ok {
			continue
		}
		var meta frontMatter
		body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
		if err != nil {
			return CreatePostData{}, fmt.Errorf("posts: parse %s frontmatter: %w", lang, err)
		}
		seq, err := blocks.FromMarkdown(body)
		if err != nil {
			return CreatePostData{}, fmt.Errorf("posts: import %s content: %w", lang, err)
		}
		data.Title = data.Title.With(lang, strings.TrimSpace(meta.Title))
		data.Content = data.Content.With(lang, blocks.Sanitize(seq))
		mergeFrontMatter(&data, meta)
	}
	return data, nil
}

func mergeFrontMatter(data *CreatePostData, meta frontMatter) {
	fill := func(dst *string, value string) {
		if *dst == "" {
			*dst = strings.TrimSpace(value)
		}
	}
	fill(&data.AuthorName, meta.AuthorName)
	fill(&data.AuthorEmail, meta.AuthorEmail)
	fill(&data.PostImage, meta.Image)
	fill(&data.Category, meta.Category)
	if len(data.Tags) == 0 && len(meta.Tags) > 0 {
		data.Tags = append(data.Tags, meta.Tags...)
	}
	if data.Status == StatusDraft && meta.Status != "" {
		data.Status = strings.TrimSpace(meta.Status)
	}
	data.Featured = data.Featured || meta.Featured
}
