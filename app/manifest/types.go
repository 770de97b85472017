package manifest

const (
	KindPrefix   = "prefix"
	KindTaxonomy = "taxonomy"
)

// Manifest describes a batch of conversion jobs to run in order.
type Manifest struct {
	Jobs []Job `yaml:"jobs"`
}

// Job is a single conversion: either prefix-matched tags of published
// posts, or tags of a named taxonomy.
type Job struct {
	Name            string `yaml:"name"`
	Kind            string `yaml:"kind"`
	Prefix          string `yaml:"prefix"`
	Taxonomy        string `yaml:"taxonomy"`
	UnsetAuthorTags bool   `yaml:"unset_author_tags"`
}
