package cfg

// Cfg is the resolved application configuration.
type Cfg struct {
	// Database configuration
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	TablePrefix string

	// Conversion options
	TagPrefix       string
	PostType        string
	UnsetAuthorTags bool
	DryRun          bool

	// Application metadata
	Timezone string
	Debug    bool
	Version  string

	// Positional command and its arguments
	Command string
	Args    []string
}
