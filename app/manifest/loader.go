package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPrefix is the tag prefix assumed for prefix jobs that do not set
// their own.
const DefaultPrefix = "author:"

// Load reads and validates a job manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	setDefaults(&m)

	if err := validate(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	return &m, nil
}

func setDefaults(m *Manifest) {
	for i := range m.Jobs {
		job := &m.Jobs[i]
		if job.Name == "" {
			job.Name = fmt.Sprintf("job-%d", i+1)
		}
		if job.Kind == KindPrefix && job.Prefix == "" {
			job.Prefix = DefaultPrefix
		}
	}
}

func validate(m *Manifest) error {
	if len(m.Jobs) == 0 {
		return fmt.Errorf("manifest defines no jobs")
	}

	for _, job := range m.Jobs {
		switch job.Kind {
		case KindPrefix:
			// Prefix is defaulted above; nothing else required.
		case KindTaxonomy:
			if job.Taxonomy == "" {
				return fmt.Errorf("job %q: taxonomy is required for kind %q", job.Name, KindTaxonomy)
			}
		case "":
			return fmt.Errorf("job %q: kind is required", job.Name)
		default:
			return fmt.Errorf("job %q: unknown kind %q", job.Name, job.Kind)
		}
	}

	return nil
}
