package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findCommand(t *testing.T, name string) *cli.Command {
	t.Helper()
	for _, cmd := range newApp().Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not defined", name)
	return nil
}

func findStringFlag(t *testing.T, cmd *cli.Command, name string) *cli.StringFlag {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("string flag %q not defined on %q", name, cmd.Name)
	return nil
}

func findIntFlag(t *testing.T, cmd *cli.Command, name string) *cli.IntFlag {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.IntFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("int flag %q not defined on %q", name, cmd.Name)
	return nil
}

// rootFlags exposes the app-level flags through the same lookup helpers
// the command tests use.
func rootFlags(t *testing.T) *cli.Command {
	t.Helper()
	return &cli.Command{Name: "root", Flags: newApp().Flags}
}

// runWithLogLevel drives setupLogger through a minimal app, the same way
// the real app wires it as a Before hook.
func runWithLogLevel(t *testing.T, level string) error {
	t.Helper()
	app := &cli.App{
		Name:   "test",
		Flags:  []cli.Flag{&cli.StringFlag{Name: "log-level", Value: "info"}},
		Before: setupLogger,
		Action: func(c *cli.Context) error { return nil },
	}
	return app.Run([]string{"test", "--log-level", level})
}

func TestAppCommands(t *testing.T) {
	app := newApp()

	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"serve", "ingest", "search", "stats", "export", "reembed"}, names)
}

func TestServeCommandFlags(t *testing.T) {
	cmd := findCommand(t, "serve")

	t.Run("db has default value and env binding", func(t *testing.T) {
		flag := findStringFlag(t, cmd, "db")
		assert.Equal(t, "./services_db", flag.Value)
		assert.Equal(t, []string{"SERVIT_DB"}, flag.EnvVars)
	})

	t.Run("listen has default value and env binding", func(t *testing.T) {
		flag := findStringFlag(t, cmd, "listen")
		assert.Equal(t, ":8080", flag.Value)
		assert.Equal(t, []string{"SERVIT_LISTEN"}, flag.EnvVars)
	})

	t.Run("seed-file has env binding", func(t *testing.T) {
		flag := findStringFlag(t, cmd, "seed-file")
		assert.Empty(t, flag.Value)
		assert.Equal(t, []string{"SERVIT_SEED_FILE"}, flag.EnvVars)
	})

	t.Run("embedding-host has default value", func(t *testing.T) {
		flag := findStringFlag(t, cmd, "embedding-host")
		assert.Equal(t, "http://localhost:11434/v1", flag.Value)
		assert.Equal(t, []string{"EMBEDDING_HOST"}, flag.EnvVars)
	})

	t.Run("gemini-api-key has no default value", func(t *testing.T) {
		flag := findStringFlag(t, cmd, "gemini-api-key")
		assert.Empty(t, flag.Value)
		assert.Equal(t, []string{"GEMINI_API_KEY"}, flag.EnvVars)
	})
}

func TestReembedCommandFlags(t *testing.T) {
	cmd := findCommand(t, "reembed")

	t.Run("embedding-model is required", func(t *testing.T) {
		flag := findStringFlag(t, cmd, "embedding-model")
		assert.Empty(t, flag.Value)
		assert.True(t, flag.Required)
	})

	t.Run("batch-size has default value of 100", func(t *testing.T) {
		flag := findIntFlag(t, cmd, "batch-size")
		assert.Equal(t, 100, flag.Value)
	})

	t.Run("report-interval has default value of 100", func(t *testing.T) {
		flag := findIntFlag(t, cmd, "report-interval")
		assert.Equal(t, 100, flag.Value)
	})

	t.Run("max-retries has default value of 3", func(t *testing.T) {
		flag := findIntFlag(t, cmd, "max-retries")
		assert.Equal(t, 3, flag.Value)
	})

	t.Run("retry-delay has default value of 1s", func(t *testing.T) {
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.DurationFlag); ok && f.Name == "retry-delay" {
				assert.Equal(t, 1*time.Second, f.Value)
				return
			}
		}
		t.Fatal("retry-delay flag not defined")
	})
}

func TestSearchCommandValidation(t *testing.T) {
	err := newApp().Run([]string{"servit", "search"})
	require.Error(t, err, "search without a query must fail")
	assert.Contains(t, err.Error(), "usage")
}

func TestExportCommandValidation(t *testing.T) {
	t.Run("query is required", func(t *testing.T) {
		err := newApp().Run([]string{"servit", "export"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage")
	})

	t.Run("unsupported format fails", func(t *testing.T) {
		err := newApp().Run([]string{"servit", "export", "--format", "csv", "ac", "repair"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})

	t.Run("xlsx requires an output file", func(t *testing.T) {
		err := newApp().Run([]string{"servit", "export", "--format", "xlsx", "ac", "repair"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--out")
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("recognized levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			assert.NoError(t, runWithLogLevel(t, level), "level %q must be accepted", level)
		}
	})

	t.Run("matching ignores case", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			assert.NoError(t, runWithLogLevel(t, level), "level %q must be accepted", level)
		}
	})

	t.Run("unknown level fails with the offending value", func(t *testing.T) {
		err := runWithLogLevel(t, "chatty")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "chatty")
	})

	t.Run("defaults to info", func(t *testing.T) {
		flag := findStringFlag(t, rootFlags(t), "log-level")
		assert.Equal(t, "info", flag.Value)
	})

	t.Run("-l is an alias", func(t *testing.T) {
		flag := findStringFlag(t, rootFlags(t), "log-level")
		assert.Contains(t, flag.Aliases, "l")
	})
}
