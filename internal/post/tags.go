package post

import (
	"strings"

	"git.sr.ht/~mariusor/tagextractor"
)

type tags []string

func renderTagsText(t tags, tagPref string) string {
	for i, g := range t {
		t[i] = tagPref + tagextractor.TagNormalize(g)
	}

	return strings.Join(uniqueValues(t, stringsContain), " ")
}

func (t tags) Render(tagPref string) string {
	for i, g := range t {
		t[i] = tagPref + tagextractor.TagNormalize(g)
	}

	return strings.Join(uniqueValues(t, stringsContain), " ")
}
