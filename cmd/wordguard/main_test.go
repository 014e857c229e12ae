package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilsonani/wordguard/internal/config"
	"github.com/fenilsonani/wordguard/internal/controller"
	"github.com/fenilsonani/wordguard/internal/output"
	"github.com/fenilsonani/wordguard/internal/words"
)

func resetFlags() {
	configPath = ""
	verbose = false
	wordsFile = ""
	inlineWords = nil
	outputDir = ""
	excludes = nil
	workers = 0
	interactive = false
	format = ""
	keepBoth = false
	quiet = false
	reportFile = ""
	initConfig = false
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestScanCommand(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	out := filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("the cat sat"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "b.txt"), []byte("nothing here"), 0644))

	stdout, err := execute(t, "scan", src,
		"--config", filepath.Join(root, "missing.yaml"),
		"--word", "cat",
		"--output", out,
		"--format", "json",
		"--quiet")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, float64(1), doc["total_matched"])
	assert.Equal(t, false, doc["cancelled"])

	assert.FileExists(t, filepath.Join(out, "a.txt"))
	assert.FileExists(t, filepath.Join(out, "Modified_a.txt"))
	assert.FileExists(t, filepath.Join(out, "report.txt"))
	assert.NoFileExists(t, filepath.Join(out, "b.txt"))

	redacted, err := os.ReadFile(filepath.Join(out, "Modified_a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "the ******* sat", string(redacted))
}

func TestScanCommandWordsFileIsLineDelimited(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	out := filepath.Join(root, "out")
	list := filepath.Join(root, "words.txt")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(list, []byte("top secret\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "plan.txt"), []byte("a top secret plan"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "memo.txt"), []byte("top of the page"), 0644))

	_, err := execute(t, "scan", src,
		"--config", filepath.Join(root, "missing.yaml"),
		"--words", list,
		"--output", out,
		"--format", "json",
		"--quiet")
	require.NoError(t, err)

	redacted, err := os.ReadFile(filepath.Join(out, "Modified_plan.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a ******* plan", string(redacted))
	assert.NoFileExists(t, filepath.Join(out, "memo.txt"))
}

func TestScanCommandWithoutWords(t *testing.T) {
	root := t.TempDir()

	_, err := execute(t, "scan", root,
		"--config", filepath.Join(root, "missing.yaml"),
		"--output", filepath.Join(root, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no forbidden words")
	assert.NoDirExists(t, filepath.Join(root, "out"))
}

func TestConfigCommandInit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "wordguard", "config.yaml")

	stdout, err := execute(t, "config", "--init", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created "+cfgPath)
	assert.Contains(t, stdout, "collision_policy: overwrite")
	assert.Contains(t, stdout, "Files larger than 256.00 MB are skipped.")
	assert.FileExists(t, cfgPath)
}

func TestConfigCommandWithoutSizeLimit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("max_file_size: \"\"\n"), 0644))

	stdout, err := execute(t, "config", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No file size limit.")
}

func TestConfigCommandMissingFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	stdout, err := execute(t, "config", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Config file does not exist")
	assert.NoFileExists(t, cfgPath)
}

func TestScanRootsFromArgs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")

	roots, skip, err := scanRoots(context.Background(), config.GetDefault(), []string{sub, dir, dir})
	require.NoError(t, err)
	assert.Equal(t, []string{dir}, roots)
	assert.Empty(t, skip)
}

func TestScanRootsFromConfig(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()

	cfg := config.GetDefault()
	cfg.Roots = []string{b, a}

	roots, skip, err := scanRoots(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, roots)
	assert.Empty(t, skip)
}

func TestTogglePauseDescribesScan(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("cat"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "b.txt"), []byte("cat"), 0644))

	store, err := output.NewStore(filepath.Join(root, "out"), output.PolicyOverwrite)
	require.NoError(t, err)

	matched := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	ctrl := controller.New(store, controller.CallbackFuncs{
		Matched: func(string, int) {
			once.Do(func() { close(matched) })
			<-release
		},
	})

	set, err := words.New("cat")
	require.NoError(t, err)
	require.NoError(t, ctrl.Start([]string{src}, set))

	select {
	case <-matched:
	case <-time.After(5 * time.Second):
		close(release)
		t.Fatal("no match reported")
	}

	status, err := togglePause(ctrl)
	require.NoError(t, err)
	assert.Contains(t, status, "Paused at")

	status, err = togglePause(ctrl)
	require.NoError(t, err)
	assert.Contains(t, status, "Scanning...")

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, ctrl.Wait(ctx))

	_, err = togglePause(ctrl)
	assert.ErrorIs(t, err, controller.ErrInvalidState)
}
