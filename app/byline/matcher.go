package byline

import "strings"

// Policy decides whether a tag carries an author name and extracts it.
type Policy interface {
	// Extract returns the raw author name encoded in the tag, or ok false
	// when the tag does not match the policy.
	Extract(tag Tag) (name string, ok bool)
}

// PrefixPolicy matches tags whose name starts with Prefix, byte-wise and
// case-sensitive. The extracted name is the remainder after the prefix,
// unmodified.
type PrefixPolicy struct {
	Prefix string
}

func (p PrefixPolicy) Extract(tag Tag) (string, bool) {
	if !strings.HasPrefix(tag.Name, p.Prefix) {
		return "", false
	}
	return tag.Name[len(p.Prefix):], true
}

// TaxonomyPolicy matches tags belonging to Taxonomy. The extracted name is
// the tag name verbatim.
type TaxonomyPolicy struct {
	Taxonomy string
}

func (p TaxonomyPolicy) Extract(tag Tag) (string, bool) {
	if tag.Taxonomy != p.Taxonomy {
		return "", false
	}
	return tag.Name, true
}

// Matcher extracts author markers from a post's tag set.
type Matcher struct {
	policy Policy
}

func NewMatcher(policy Policy) *Matcher {
	return &Matcher{policy: policy}
}

// Run returns the markers for the tags matching the policy, in input
// order. An empty or non-matching input yields an empty result, never an
// error.
func (m *Matcher) Run(tags []Tag) []AuthorMarker {
	markers := []AuthorMarker{}

	for _, tag := range tags {
		name, ok := m.policy.Extract(tag)
		if !ok {
			continue
		}
		markers = append(markers, AuthorMarker{Tag: tag, Name: name})
	}

	return markers
}
