package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBHost      string `long:"db-host" env:"DB_HOST" default:"localhost" description:"WordPress database host"`
	DBPort      string `long:"db-port" env:"DB_PORT" default:"3306" description:"WordPress database port"`
	DBUser      string `long:"db-user" env:"DB_USER" default:"wordpress" description:"WordPress database user"`
	DBPassword  string `long:"db-password" env:"DB_PASSWORD" description:"WordPress database password (required)" required:"true"`
	DBName      string `long:"db-name" env:"DB_NAME" default:"wordpress" description:"WordPress database name"`
	TablePrefix string `long:"table-prefix" env:"TABLE_PREFIX" default:"wp_" description:"WordPress table prefix"`

	// Conversion options
	TagPrefix       string `long:"tag-prefix" env:"TAG_PREFIX" default:"author:" description:"Tag prefix identifying author tags"`
	PostType        string `long:"post-type" env:"POST_TYPE" default:"post" description:"Post type to process"`
	UnsetAuthorTags bool   `long:"unset-author-tags" description:"Remove the consumed author tags from each converted post"`
	DryRun          bool   `long:"dry-run" description:"Log intended changes without writing anything"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Load parses flags and environment variables. A nil Cfg with a nil error
// means help was shown and the caller should exit quietly.
func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	parser.Usage = "[OPTIONS] COMMAND [ARGS]\n\nCommands:\n" +
		"  tags-with-prefix-to-guest-authors      Convert prefix-marked tags of published posts\n" +
		"  tags-with-taxonomy-to-guest-authors    Convert tags of a taxonomy (argument: taxonomy name)\n" +
		"  run-manifest                           Run conversion jobs from a YAML manifest (argument: file)\n" +
		"  version                                Print the version"

	args, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBHost:          raw.DBHost,
		DBPort:          raw.DBPort,
		DBUser:          raw.DBUser,
		DBPassword:      raw.DBPassword,
		DBName:          raw.DBName,
		TablePrefix:     raw.TablePrefix,
		TagPrefix:       raw.TagPrefix,
		PostType:        raw.PostType,
		UnsetAuthorTags: raw.UnsetAuthorTags,
		DryRun:          raw.DryRun,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if len(args) > 0 {
		cfg.Command = args[0]
		cfg.Args = args[1:]
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

// Get returns the loaded configuration. Panics when called before Load.
func Get() *Cfg {
	if globalCfg == nil {
		panic("cfg.Get called before cfg.Load")
	}
	return globalCfg
}

func applyTimezone(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	time.Local = loc
	return nil
}
