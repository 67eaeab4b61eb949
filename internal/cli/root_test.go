package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func resetFlags(cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				sv.Replace(nil)
			} else {
				f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd, walkCmd)

	var out, errb bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errb)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errb.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// fixture writes a source file, a name list and an empty config so tests
// never pick up a decorate.yaml from the working directory.
func fixture(t *testing.T, src, list string) (dir, srcPath, listPath, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	srcPath = filepath.Join(dir, "m68kops.c")
	listPath = filepath.Join(dir, "fast.txt")
	cfgPath = filepath.Join(dir, "decorate.yaml")
	writeFile(t, srcPath, src)
	writeFile(t, listPath, list)
	writeFile(t, cfgPath, "")
	return dir, srcPath, listPath, cfgPath
}

func TestDecorateCommand(t *testing.T) {
	_, srcPath, listPath, cfgPath := fixture(t,
		"static void foo(void)\nstatic void bar(void)\nstatic void baz(void)\n",
		"foo\nbaz\nfoo\n",
	)

	stdout, _, err := execute(t, "--config", cfgPath, srcPath, listPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stdout != "Read 2 functions\n" {
		t.Errorf("expected name count on stdout, got %q", stdout)
	}

	want := "static void M68K_FAST_FUNC(foo)(void) /* In SRAM */\n" +
		"static void bar(void)\n" +
		"static void M68K_FAST_FUNC(baz)(void) /* In SRAM */\n"
	if got := readFile(t, srcPath); got != want {
		t.Errorf("unexpected source:\n%s", got)
	}
}

func TestDecorateCommandMarkerFlag(t *testing.T) {
	_, srcPath, listPath, cfgPath := fixture(t, "static void foo(void)\n", "foo\n")

	if _, _, err := execute(t, "--config", cfgPath, "--marker", "HOT", srcPath, listPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := readFile(t, srcPath); got != "static void HOT(foo)(void) /* In SRAM */\n" {
		t.Errorf("unexpected source: %q", got)
	}
}

func TestDecorateCommandConfigFile(t *testing.T) {
	_, srcPath, listPath, cfgPath := fixture(t, "static void foo(void)\n", "foo\n")
	writeFile(t, cfgPath, "decorate:\n  marker: ITCM\n  comment: \"/* ITCM */\"\nwrite:\n  atomic: false\n")

	if _, _, err := execute(t, "--config", cfgPath, srcPath, listPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := readFile(t, srcPath); got != "static void ITCM(foo)(void) /* ITCM */\n" {
		t.Errorf("unexpected source: %q", got)
	}
}

func TestDecorateCommandInvalidMarker(t *testing.T) {
	_, srcPath, listPath, cfgPath := fixture(t, "static void foo(void)\n", "foo\n")

	_, _, err := execute(t, "--config", cfgPath, "--marker", "not valid", srcPath, listPath)
	if err == nil || !strings.Contains(err.Error(), "not a C identifier") {
		t.Fatalf("expected invalid marker error, got %v", err)
	}
	if got := readFile(t, srcPath); got != "static void foo(void)\n" {
		t.Errorf("expected source untouched, got %q", got)
	}
}

func TestDecorateCommandDryRun(t *testing.T) {
	src := "static void foo(void)\n{\n}\nstatic void bar(void)\n"
	_, srcPath, listPath, cfgPath := fixture(t, src, "bar\n")

	stdout, _, err := execute(t, "--config", cfgPath, "--dry-run", srcPath, listPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stdout, srcPath+":4: bar\n") {
		t.Errorf("expected match report, got %q", stdout)
	}
	if got := readFile(t, srcPath); got != src {
		t.Errorf("expected source untouched, got %q", got)
	}
}

func TestDecorateCommandWrongArity(t *testing.T) {
	tests := [][]string{
		{},
		{"only-one.c"},
		{"a.c", "b.txt", "c"},
	}

	for _, args := range tests {
		_, stderr, err := execute(t, args...)
		if !errors.Is(err, ErrUsage) {
			t.Errorf("args %v: expected ErrUsage, got %v", args, err)
		}
		if !strings.Contains(stderr, "decorate <source-path> <name-list-path>") {
			t.Errorf("args %v: expected usage on stderr, got %q", args, stderr)
		}
	}
}

func TestDecorateCommandMissingFiles(t *testing.T) {
	dir, srcPath, listPath, cfgPath := fixture(t, "static void foo(void)\n", "foo\n")

	_, _, err := execute(t, "--config", cfgPath, srcPath, filepath.Join(dir, "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected missing name list error, got %v", err)
	}

	_, _, err = execute(t, "--config", cfgPath, filepath.Join(dir, "missing.c"), listPath)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected missing source error, got %v", err)
	}

	if got := readFile(t, srcPath); got != "static void foo(void)\n" {
		t.Errorf("expected source untouched, got %q", got)
	}
}

func TestWalkCommand(t *testing.T) {
	dir, _, listPath, cfgPath := fixture(t, "static void foo(void)\n", "foo\n")
	writeFile(t, filepath.Join(dir, "src", "a.c"), "static void foo(void)\n")
	writeFile(t, filepath.Join(dir, "src", "b.c"), "static void bar(void)\n")
	writeFile(t, filepath.Join(dir, "src", "skip", "c.c"), "static void foo(void)\n")

	stdout, _, err := execute(t, "--config", cfgPath, "walk", "--exclude", "**/skip/**", filepath.Join(dir, "src"), listPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(stdout, "Read 1 functions\n") {
		t.Errorf("expected name count first, got %q", stdout)
	}
	if !strings.Contains(stdout, "Files scanned:    2") || !strings.Contains(stdout, "Decorations:      1") {
		t.Errorf("unexpected summary %q", stdout)
	}

	if got := readFile(t, filepath.Join(dir, "src", "a.c")); got != "static void M68K_FAST_FUNC(foo)(void) /* In SRAM */\n" {
		t.Errorf("expected a.c decorated, got %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "src", "skip", "c.c")); got != "static void foo(void)\n" {
		t.Errorf("expected excluded file untouched, got %q", got)
	}
}

func TestWalkCommandNotADirectory(t *testing.T) {
	_, srcPath, listPath, cfgPath := fixture(t, "static void foo(void)\n", "foo\n")

	_, _, err := execute(t, "--config", cfgPath, "walk", srcPath, listPath)
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("expected not a directory error, got %v", err)
	}
}

func TestWalkCommandBadPattern(t *testing.T) {
	dir, _, listPath, cfgPath := fixture(t, "", "foo\n")

	_, _, err := execute(t, "--config", cfgPath, "walk", "--include", "[a-", dir, listPath)
	if err == nil || !strings.Contains(err.Error(), "invalid glob pattern") {
		t.Errorf("expected invalid pattern error, got %v", err)
	}
}
