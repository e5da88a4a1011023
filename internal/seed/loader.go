// Package seed loads the fixture users and tasks the server starts with.
// Fixtures are YAML files under the users/ and tasks/ prefixes of a storage
// backend, each holding a list under a "users" or "tasks" key.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kazz187/taskmarket/internal/task"
	"github.com/kazz187/taskmarket/internal/user"
	"github.com/kazz187/taskmarket/pkg/cerr"
	"github.com/kazz187/taskmarket/pkg/storage"
)

const (
	usersPrefix = "users"
	tasksPrefix = "tasks"
)

type usersFile struct {
	Users []*user.User `yaml:"users"`
}

type tasksFile struct {
	Tasks []*task.Task `yaml:"tasks"`
}

type Result struct {
	Users int
	Tasks int
}

type Loader struct {
	storage storage.Storage
	users   user.Repository
	tasks   task.Repository
}

func NewLoader(s storage.Storage, users user.Repository, tasks task.Repository) *Loader {
	return &Loader{
		storage: s,
		users:   users,
		tasks:   tasks,
	}
}

// Load reads every fixture file in name order and inserts its entries. Tasks
// keep the id, status and timestamps recorded in the fixture.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	var res Result

	userPaths, err := l.list(ctx, usersPrefix)
	if err != nil {
		return res, err
	}
	for _, p := range userPaths {
		var f usersFile
		if err := l.decode(ctx, p, &f); err != nil {
			return res, err
		}
		for _, u := range f.Users {
			if u.ID == "" || u.Email == "" {
				return res, fixtureError(p, "user without id or email")
			}
			if err := l.users.Create(ctx, u); err != nil {
				return res, fmt.Errorf("seed user %s from %s: %w", u.ID, p, err)
			}
			res.Users++
		}
	}

	taskPaths, err := l.list(ctx, tasksPrefix)
	if err != nil {
		return res, err
	}
	for _, p := range taskPaths {
		var f tasksFile
		if err := l.decode(ctx, p, &f); err != nil {
			return res, err
		}
		for _, t := range f.Tasks {
			if err := checkTask(t); err != nil {
				return res, fixtureError(p, err.Error())
			}
			if err := l.tasks.Create(ctx, t); err != nil {
				return res, fmt.Errorf("seed task %s from %s: %w", t.ID, p, err)
			}
			res.Tasks++
		}
	}

	slog.InfoContext(ctx, "seed fixtures loaded", "users", res.Users, "tasks", res.Tasks)
	return res, nil
}

func (l *Loader) list(ctx context.Context, prefix string) ([]string, error) {
	paths, err := l.storage.List(ctx, prefix)
	if err != nil {
		return nil, cerr.WrapStorageError(prefix, err)
	}
	var out []string
	for _, p := range paths {
		switch strings.ToLower(path.Ext(p)) {
		case ".yaml", ".yml":
			out = append(out, p)
		}
	}
	return out, nil
}

func (l *Loader) decode(ctx context.Context, p string, v any) error {
	data, err := l.storage.Read(ctx, p)
	if err != nil {
		return cerr.WrapStorageError(p, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fixtureError(p, err.Error())
	}
	return nil
}

func checkTask(t *task.Task) error {
	switch {
	case t.ID == "":
		return errors.New("task without id")
	case !t.Status.Valid():
		return fmt.Errorf("task %s has unknown status %q", t.ID, t.Status)
	case !t.Category.Valid():
		return fmt.Errorf("task %s has unknown category %q", t.ID, t.Category)
	case t.PostedBy.ID == "":
		return fmt.Errorf("task %s has no poster", t.ID)
	case t.Status == task.StatusAssigned && t.AssignedTo == nil:
		return fmt.Errorf("task %s is assigned without an assignee", t.ID)
	}
	return nil
}

func fixtureError(p, msg string) error {
	return cerr.NewError(cerr.Internal, "invalid seed fixture", fmt.Errorf("%s: %s", p, msg))
}
