package main

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

func initGitRepo(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(dir, ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		_, err = worktree.Add(filepath.ToSlash(rel))
		return err
	}); err != nil {
		t.Fatalf("stage files: %v", err)
	}
	hash, err := worktree.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "mscript", Email: "mscript@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

// runCLI isolates the config home and runs the CLI without color.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	if os.Getenv("MSCRIPT_HOME") == "" {
		t.Setenv("MSCRIPT_HOME", t.TempDir())
	}
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"--no-color"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	if code != 0 || strings.TrimSpace(out) != cliToolVersion {
		t.Fatalf("version = %d %q", code, out)
	}
}

func TestRunFile(t *testing.T) {
	script := filepath.Join(t.TempDir(), "sum.ms")
	writeFile(t, script, `print(2+2)`)

	code, out, stderr := runCLI(t, "run", script)
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	if out != "4.000000 \n" {
		t.Fatalf("stdout = %q", out)
	}
}

func TestRunReportsStage(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"parse.ms":   "int a = ",
		"runtime.ms": "int a = 0; print(1 / a)",
	}
	for name, src := range cases {
		script := filepath.Join(dir, name)
		writeFile(t, script, src)
		code, _, stderr := runCLI(t, "run", script)
		if code != 1 {
			t.Fatalf("%s: exit %d", name, code)
		}
		want := strings.TrimSuffix(name, ".ms") + " error: "
		if !strings.HasPrefix(stderr, want) {
			t.Fatalf("%s: stderr = %q, want prefix %q", name, stderr, want)
		}
	}
}

func TestRunMissingScript(t *testing.T) {
	chdir(t, t.TempDir())
	code, _, stderr := runCLI(t, "run", "nothing-here.ms")
	if code != 1 || !strings.Contains(stderr, `no script, source or file named "nothing-here.ms"`) {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
}

func TestRunManifestScripts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mscript.yml"), `
name: demo
main: scripts/main.ms
scripts:
  fib: scripts/fib.ms
`)
	writeFile(t, filepath.Join(dir, "scripts", "main.ms"), `print(1)`)
	writeFile(t, filepath.Join(dir, "scripts", "fib.ms"),
		`int a=0;int b=1;int c;int n=5;for(int i=0;i<n;i=i+1){c=a+b;a=b;b=c;print(b);};`)
	chdir(t, dir)

	code, out, stderr := runCLI(t, "run")
	if code != 0 || out != "1.000000 \n" {
		t.Fatalf("default run: exit %d, out %q, stderr %q", code, out, stderr)
	}
	code, out, stderr = runCLI(t, "run", "fib")
	if code != 0 {
		t.Fatalf("fib: exit %d, stderr %q", code, stderr)
	}
	if want := "1.000000 \n2.000000 \n3.000000 \n5.000000 \n8.000000 \n"; out != want {
		t.Fatalf("fib output = %q, want %q", out, want)
	}
}

func TestFetchAndRunSource(t *testing.T) {
	root := t.TempDir()
	repo := filepath.Join(root, "shared")
	writeFile(t, filepath.Join(repo, "lib", "greet.ms"), `print(42)`)
	rev := initGitRepo(t, repo)

	app := filepath.Join(root, "app")
	writeFile(t, filepath.Join(app, "mscript.yml"), `
name: app
main: main.ms
sources:
  shared:
    git: `+repo+`
    rev: `+rev+`
`)
	writeFile(t, filepath.Join(app, "main.ms"), `print(0)`)
	t.Setenv("MSCRIPT_HOME", filepath.Join(root, "home"))
	chdir(t, app)

	code, _, stderr := runCLI(t, "run", "shared:lib/greet.ms")
	if code != 1 || !strings.Contains(stderr, "run mscript fetch") {
		t.Fatalf("unfetched source: exit %d, stderr %q", code, stderr)
	}

	code, out, stderr := runCLI(t, "fetch")
	if code != 0 {
		t.Fatalf("fetch: exit %d, stderr %q", code, stderr)
	}
	if !strings.Contains(out, "Fetched shared "+rev) || !strings.Contains(out, "Created mscript.lock") {
		t.Fatalf("fetch output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(app, "mscript.lock")); err != nil {
		t.Fatalf("lockfile not written: %v", err)
	}

	code, out, _ = runCLI(t, "fetch")
	if code != 0 || !strings.Contains(out, "already up to date") {
		t.Fatalf("second fetch: exit %d, out %q", code, out)
	}

	code, out, stderr = runCLI(t, "run", "shared:lib/greet.ms")
	if code != 0 || out != "42.000000 \n" {
		t.Fatalf("run source: exit %d, out %q, stderr %q", code, out, stderr)
	}
}

func TestTokens(t *testing.T) {
	script := filepath.Join(t.TempDir(), "t.ms")
	writeFile(t, script, "int a = 1.5")
	code, out, stderr := runCLI(t, "tokens", script)
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	want := "1:1\tint\tint\n1:5\tname\ta\n1:7\t=\t=\n1:9\tfloat\t1.5\n"
	if out != want {
		t.Fatalf("tokens = %q, want %q", out, want)
	}
}

func TestTokensLexError(t *testing.T) {
	script := filepath.Join(t.TempDir(), "t.ms")
	writeFile(t, script, "int a = 1 $")
	code, _, stderr := runCLI(t, "tokens", script)
	if code != 1 || !strings.Contains(stderr, "illegal character '$'") {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
}

func TestAST(t *testing.T) {
	script := filepath.Join(t.TempDir(), "t.ms")
	writeFile(t, script, "int a = 1; float b")
	code, out, stderr := runCLI(t, "ast", "--symbols", script)
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	for _, want := range []string{"int a = 1", "float b", "symbols:", "  a\tint", "  b\tfloat"} {
		if !strings.Contains(out, want) {
			t.Fatalf("ast output missing %q:\n%s", want, out)
		}
	}

	code, out, _ = runCLI(t, "ast", "--json", script)
	if code != 0 || !strings.Contains(out, `"type": "Declaration"`) {
		t.Fatalf("json ast: exit %d, out %s", code, out)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	code, _, stderr := runCLI(t, "--log-level", "loud", "version")
	if code != 1 || !strings.Contains(stderr, "log_level") {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
}

func TestLogFlagsAreCaseInsensitive(t *testing.T) {
	code, out, stderr := runCLI(t, "--log-level", " DEBUG ", "--log-format", "JSON", "version")
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	if out == "" {
		t.Fatalf("version printed nothing")
	}
	if !strings.Contains(stderr, `"msg":"config loaded"`) {
		t.Fatalf("expected a JSON debug record, stderr %q", stderr)
	}
}

func TestRunDumpEnv(t *testing.T) {
	script := filepath.Join(t.TempDir(), "vars.ms")
	writeFile(t, script, `float b = 1.5; int a = 3; print(a)`)

	code, out, stderr := runCLI(t, "run", "--dump-env", script)
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	if out != "3.000000 \n" {
		t.Fatalf("stdout = %q", out)
	}
	if stderr != "a = 3\nb = 1.500000\n" {
		t.Fatalf("stderr = %q", stderr)
	}

	code, _, stderr = runCLI(t, "run", script)
	if code != 0 || stderr != "" {
		t.Fatalf("without --dump-env: exit %d, stderr %q", code, stderr)
	}
}

func TestRunDumpEnvSkippedOnFailure(t *testing.T) {
	script := filepath.Join(t.TempDir(), "bad.ms")
	writeFile(t, script, `int a = 0; print(1 / a)`)

	code, _, stderr := runCLI(t, "run", "--dump-env", script)
	if code != 1 {
		t.Fatalf("exit %d", code)
	}
	if strings.Contains(stderr, "a = 0") {
		t.Fatalf("environment dumped after failure: %q", stderr)
	}
}

func TestWatchGivesUp(t *testing.T) {
	script := filepath.Join(t.TempDir(), "bad.ms")
	writeFile(t, script, "print(")
	code, _, stderr := runCLI(t, "watch", "--max-attempts", "1", script)
	if code != 1 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stderr, "parse error: ") || !strings.Contains(stderr, "giving up") {
		t.Fatalf("stderr = %q", stderr)
	}
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
