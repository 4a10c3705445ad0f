package root

import (
	"context"
	"fmt"
	"strings"

	"taskdeck/internal/model"
	"taskdeck/internal/repo"
	"taskdeck/internal/store"
)

// openRepo builds the repository from the configured storage backend.
// The returned cleanup closes the underlying store.
func openRepo() (*repo.Repository, *model.AppConfig, func(), error) {
	path := configPath
	if path == "" {
		path = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if dataPath != "" {
		cfg.Storage.Path = dataPath
	}

	var s store.DocumentStore
	switch cfg.Storage.Backend {
	case "sqlite":
		s, err = store.NewSQLiteStore(cfg.Storage.Path)
	default:
		s, err = store.NewFileStore(cfg.Storage.Path)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	cleanup := func() {
		_ = s.Close()
	}
	return repo.New(s), cfg, cleanup, nil
}

// findProjectID resolves a project name to its ID.
func findProjectID(ctx context.Context, r *repo.Repository, name string) (string, error) {
	projects, err := r.Projects(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, name) {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("no project named %q", name)
}

// resolveTaskID matches a full ID or unambiguous ID prefix to a task.
func resolveTaskID(ctx context.Context, r *repo.Repository, prefix string) (string, error) {
	tasks, err := r.Tasks(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range tasks {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no task with id %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}
