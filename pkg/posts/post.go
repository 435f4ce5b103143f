package posts

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/blocks"
	"github.com/goliatone/go-formkit/pkg/engine"
	"github.com/goliatone/go-formkit/pkg/i18n"
)

// Post statuses offered by the built-in post schema.
const (
	StatusDraft     = "draft"
	StatusInReview  = "in-review"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// CreatePostData is the body of a create or update call.
type CreatePostData struct {
	Title       i18n.Text               `json:"title"`
	Content     blocks.LocalizedContent `json:"content"`
	AuthorName  string                  `json:"authorName"`
	AuthorEmail string                  `json:"authorEmail"`
	PostImage   string                  `json:"postImage,omitempty"`
	Category    string                  `json:"category"`
	Tags        []string                `json:"tags"`
	Status      string                  `json:"status"`
	Featured    bool                    `json:"featured"`
}

// Post is a persisted post as returned by the API.
type Post struct {
	ID string `json:"id"`
	CreatePostData
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Assemble combines the submitted values of the post form with the block
// sequences of both editors. Values are expected in their submitted kinds;
// an attached image file contributes its name, which the caller replaces
// with the uploaded URL. Content is sanitised on the way in.
func Assemble(values map[string]any, content blocks.LocalizedContent) (CreatePostData, error) {
	localized, rest := SplitLocalized(values)

	data := CreatePostData{
		Title:   localized["title"],
		Content: blocks.LocalizedContent{EN: blocks.Sanitize(content.EN), AR: blocks.Sanitize(content.AR)},
		Tags:    []string{},
		Status:  StatusDraft,
	}
	if data.Title.Empty() {
		if plain, ok := rest["title"].(string); ok {
			data.Title = i18n.Localized(plain, "")
		} else {
			data.Title = i18n.Localized("", "")
		}
	}

	var err error
	if data.AuthorName, err = stringValue(rest, "authorName"); err != nil {
		return CreatePostData{}, err
	}
	if data.AuthorEmail, err = stringValue(rest, "authorEmail"); err != nil {
		return CreatePostData{}, err
	}
	if data.Category, err = stringValue(rest, "category"); err != nil {
		return CreatePostData{}, err
	}
	if status, err := stringValue(rest, "status"); err != nil {
		return CreatePostData{}, err
	} else if status != "" {
		data.Status = status
	}

	switch image := rest["postImage"].(type) {
	case nil:
	case string:
		data.PostImage = strings.TrimSpace(image)
	case engine.File:
		data.PostImage = image.Name
	default:
		return CreatePostData{}, fmt.Errorf("posts: postImage: unsupported value %T", image)
	}

	switch tags := rest["tags"].(type) {
	case nil:
	case []string:
		data.Tags = append(data.Tags, tags...)
	case []any:
		for _, tag := range tags {
			data.Tags = append(data.Tags, fmt.Sprint(tag))
		}
	default:
		return CreatePostData{}, fmt.Errorf("posts: tags: unsupported value %T", tags)
	}

	switch featured := rest["featured"].(type) {
	case nil:
	case bool:
		data.Featured = featured
	default:
		return CreatePostData{}, fmt.Errorf("posts: featured: unsupported value %T", featured)
	}
	return data, nil
}

func stringValue(values map[string]any, key string) (string, error) {
	switch v := values[key].(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	default:
		return "", fmt.Errorf("posts: %s: expected string, got %T", key, v)
	}
}

// Editors seeds one block editor per language from an existing post.
func Editors(post *Post, opts ...blocks.EditorOption) (en, ar *blocks.Editor) {
	var content blocks.LocalizedContent
	if post != nil {
		content = post.Content
	}
	return blocks.NewEditor(i18n.English, content.EN, opts...), blocks.NewEditor(i18n.Arabic, content.AR, opts...)
}

// FormDefaults turns a persisted post into defaults for the post form.
func FormDefaults(post Post) map[string]any {
	tags := append([]string(nil), post.Tags...)
	return map[string]any{
		"enTitle":     post.Title.In(i18n.English),
		"arTitle":     post.Title.In(i18n.Arabic),
		"authorName":  post.AuthorName,
		"authorEmail": post.AuthorEmail,
		"postImage":   post.PostImage,
		"category":    post.Category,
		"tags":        tags,
		"status":      post.Status,
		"featured":    post.Featured,
	}
}
