package posts

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/blocks"
	"github.com/goliatone/go-formkit/pkg/i18n"
)

func TestImportMarkdown(t *testing.T) {
	en := []byte(`---
title: Scanner launch
author: Dr. Lee
email: lee@example.com
category: imaging
tags: [imaging, launch]
status: published
---
## Overview

The X2 ships in May.
`)
	ar := []byte(`---
title: إطلاق الماسح
author: ignored
---
نص عربي.
`)
	got, err := ImportMarkdown(map[i18n.Language][]byte{i18n.English: en, i18n.Arabic: ar})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want := CreatePostData{
		Title: i18n.Localized("Scanner launch", "إطلاق الماسح"),
		Content: blocks.LocalizedContent{
			EN: blocks.Sequence{blocks.NewParagraph("Overview", "The X2 ships in May.")},
			AR: blocks.Sequence{blocks.NewParagraph("", "نص عربي.")},
		},
		AuthorName:  "Dr. Lee",
		AuthorEmail: "lee@example.com",
		Category:    "imaging",
		Tags:        []string{"imaging", "launch"},
		Status:      StatusPublished,
	}
	if diff := cmp.Diff(want, got, compareText, ignoreBlockIDs); diff != "" {
		t.Fatalf("import mismatch (-want +got):\n%s", diff)
	}
}
