package posts

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/model"
)

// Category is an entry of the categories collaborator.
type Category struct {
	ID       string    `json:"id"`
	Slug     string    `json:"slug"`
	Name     i18n.Text `json:"name"`
	ParentID string    `json:"parentId,omitempty"`
}

// CategoryOptions turns categories into select options labelled in lang.
// Subcategories are labelled "Parent / Child". Options are ordered by label;
// entries without an id are skipped.
func CategoryOptions(categories []Category, lang i18n.Language) []model.Option {
	byID := make(map[string]Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	out := make([]model.Option, 0, len(categories))
	for _, category := range categories {
		if strings.TrimSpace(category.ID) == "" {
			continue
		}
		label := categoryLabel(category, lang)
		if parent, ok := byID[category.ParentID]; ok && category.ParentID != category.ID {
			label = categoryLabel(parent, lang) + " / " + label
		}
		out = append(out, model.Option{Value: category.ID, Label: label})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func categoryLabel(category Category, lang i18n.Language) string {
	if label := i18n.Resolve(category.Name, lang); label != "" {
		return label
	}
	if category.Slug != "" {
		return model.OptionLabel(category.Slug)
	}
	return category.ID
}

// FormOptions is the caller options map for the built-in post and product
// forms.
func FormOptions(categories []Category, lang i18n.Language) map[string][]model.Option {
	return map[string][]model.Option{"category": CategoryOptions(categories, lang)}
}
