package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"focusloop/internal/core/interval"
	"focusloop/internal/platform"
	"focusloop/internal/storage"
	"focusloop/internal/ui/preferences"
)

// homeEnv overrides the config directory, mainly for scripts and tests.
const homeEnv = "FOCUSLOOP_HOME"

// application bundles the stores and the lifecycle shared by every command.
type application struct {
	configDir string
	settings  preferences.Settings
	db        *sql.DB
	tasks     *storage.TaskStore
	intervals *storage.IntervalStore
	lifecycle *interval.Lifecycle
}

func resolveConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(homeEnv)); dir != "" {
		return dir, nil
	}
	return platform.ConfigDir(appName)
}

// openApplication loads settings, opens the database and wires the lifecycle.
func openApplication() (*application, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}

	settings, err := storage.LoadSettings(storage.SettingsPath(configDir))
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(storage.ResolveDBPath(configDir))
	if err != nil {
		return nil, err
	}

	kv, err := storage.NewSQLiteKV(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	tasks, err := storage.NewTaskStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	intervals := storage.NewIntervalStore(kv)
	return &application{
		configDir: configDir,
		settings:  settings,
		db:        db,
		tasks:     tasks,
		intervals: intervals,
		lifecycle: interval.New(settings.IntervalConfig(), intervals, tasks, interval.SystemClock{}),
	}, nil
}

func (app *application) settingsPath() string {
	return storage.SettingsPath(app.configDir)
}

func (app *application) Close() {
	if app == nil || app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close db: %v\n", err)
	}
}
