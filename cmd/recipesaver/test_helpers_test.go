package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recipesaver/internal/config"
	"recipesaver/internal/library"
	"recipesaver/internal/logging"
	"recipesaver/internal/recipe"
	"recipesaver/internal/store"
	"recipesaver/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("GEMINI_API_KEY", "")

	cfg := testsupport.NewConfig(t)

	configPath := filepath.Join(homeDir, ".config", "recipesaver", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\n\n[logging]\nformat = \"console\"\nlevel = \"error\"\n",
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// seedRecipes adds drafts directly through the repository and releases the
// data directory lock before returning so CLI invocations can acquire it.
func seedRecipes(t *testing.T, cfg *config.Config, drafts ...recipe.Draft) []recipe.Recipe {
	t.Helper()
	return seedRecipesWithOptions(t, cfg, nil, drafts...)
}

func seedRecipesWithOptions(t *testing.T, cfg *config.Config, opts []library.Option, drafts ...recipe.Draft) []recipe.Recipe {
	t.Helper()

	st, err := store.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()

	repo, err := library.Open(context.Background(), cfg, st, logging.NewNop(), opts...)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	defer repo.Close()

	added := make([]recipe.Recipe, 0, len(drafts))
	for _, draft := range drafts {
		rec, err := repo.Add(context.Background(), draft)
		if err != nil {
			t.Fatalf("repo.Add: %v", err)
		}
		added = append(added, rec)
	}
	return added
}

// readRecipes reloads the persisted collection, newest first.
func readRecipes(t *testing.T, cfg *config.Config) []recipe.Recipe {
	t.Helper()

	st, err := store.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()

	recipes, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	return recipes
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
