package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/wptools/tags-to-authors/app/byline"
	"github.com/wptools/tags-to-authors/app/cfg"
	"github.com/wptools/tags-to-authors/app/database"
	"github.com/wptools/tags-to-authors/app/manifest"
	"github.com/wptools/tags-to-authors/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	switch appCfg.Command {
	case "version":
		fmt.Println(appCfg.Version)
		return
	case "":
		fmt.Fprintln(os.Stderr, "Error: no command given, see --help")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Debug("Connecting to database", "host", appCfg.DBHost, "db", appCfg.DBName)
	db, err := database.NewConnection(appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Debug("Migrations applied", "version", version, "dirty", dirty)

	contentRepo := database.NewContentRepository(db, appCfg.TablePrefix)
	authorRepo := database.NewGuestAuthorRepository(db, appCfg.TablePrefix)
	runRepo := database.NewRunRepository(db)

	taskList, err := buildTasks(appCfg, contentRepo, authorRepo, runRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	fmt.Println("Converting...")

	runner := tasks.NewRunner()
	stats, err := runner.Run(ctx, taskList)
	if err != nil {
		slog.Error("Run aborted", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Converted tags to guest authors for %d of %d posts (%d skipped, %d failed).\n",
		stats.Converted, stats.PostsSeen, stats.Skipped, stats.Failed)
	fmt.Printf("Guest authors: %d created, %d reused.\n", stats.AuthorsCreated, stats.AuthorsReused)
	fmt.Println("Done!")

	if stats.Failed > 0 {
		os.Exit(1)
	}
}

func buildTasks(appCfg *cfg.Cfg, content byline.ContentStore, authors byline.GuestAuthorStore,
	runs *database.RunRepository) ([]tasks.TaskInterface, error) {
	switch appCfg.Command {
	case "tags-with-prefix-to-guest-authors":
		task := tasks.NewConvertPrefixTagsTask(content, authors, runs,
			appCfg.TagPrefix, appCfg.PostType, appCfg.UnsetAuthorTags, appCfg.DryRun, os.Stderr)
		return []tasks.TaskInterface{task}, nil

	case "tags-with-taxonomy-to-guest-authors":
		if len(appCfg.Args) == 0 || appCfg.Args[0] == "" {
			return nil, fmt.Errorf("invalid tag taxonomy name")
		}
		task := tasks.NewConvertTaxonomyTagsTask(content, authors, runs,
			appCfg.Args[0], appCfg.UnsetAuthorTags, appCfg.DryRun, os.Stderr)
		return []tasks.TaskInterface{task}, nil

	case "run-manifest":
		if len(appCfg.Args) == 0 || appCfg.Args[0] == "" {
			return nil, fmt.Errorf("manifest file path is required")
		}
		m, err := manifest.Load(appCfg.Args[0])
		if err != nil {
			return nil, err
		}

		var taskList []tasks.TaskInterface
		for _, job := range m.Jobs {
			slog.Debug("Manifest job", "name", job.Name, "kind", job.Kind)
			switch job.Kind {
			case manifest.KindPrefix:
				taskList = append(taskList, tasks.NewConvertPrefixTagsTask(content, authors, runs,
					job.Prefix, appCfg.PostType, job.UnsetAuthorTags, appCfg.DryRun, os.Stderr))
			case manifest.KindTaxonomy:
				taskList = append(taskList, tasks.NewConvertTaxonomyTagsTask(content, authors, runs,
					job.Taxonomy, job.UnsetAuthorTags, appCfg.DryRun, os.Stderr))
			}
		}
		return taskList, nil

	default:
		return nil, fmt.Errorf("unknown command %q, see --help", appCfg.Command)
	}
}
