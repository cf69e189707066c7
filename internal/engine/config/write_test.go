package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/irahardianto/thedot/internal/engine/git"
)

func TestWrite_DefaultTargetIsRepoRoot(t *testing.T) {
	fsys := newTestFS()
	fsys.Dirs["/repo"] = true
	r := NewResolverWithEnv(fsys, &git.MockService{Root: "/repo"}, noEnv)

	path, err := r.Write(context.Background(), "", "BECAUSE I ADORE THE DOT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != repoINI {
		t.Errorf("expected %s, got %s", repoINI, path)
	}

	got := r.Resolve(context.Background())
	if got.Suffix != "BECAUSE I ADORE THE DOT" || got.Source != repoINI {
		t.Errorf("write-then-resolve mismatch: %+v", got)
	}
}

func TestWrite_DefaultTargetWithoutRepoIsCwd(t *testing.T) {
	fsys := newTestFS()
	fsys.Dirs["/repo/sub"] = true
	r := NewResolverWithEnv(fsys, nil, noEnv)

	path, err := r.Write(context.Background(), "", "BECAUSE I HONOR THE DOT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != cwdINI {
		t.Errorf("expected %s, got %s", cwdINI, path)
	}
	got := r.Resolve(context.Background())
	if got != (ResolvedSuffix{Suffix: "BECAUSE I HONOR THE DOT", Source: cwdINI}) {
		t.Errorf("got %+v", got)
	}
}

func TestWrite_RelativeTargetIsMadeAbsolute(t *testing.T) {
	fsys := newTestFS()
	fsys.Dirs["/repo/sub"] = true
	r := NewResolverWithEnv(fsys, nil, noEnv)

	path, err := r.Write(context.Background(), FileName, "X")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != cwdINI {
		t.Errorf("expected %s, got %s", cwdINI, path)
	}
}

func TestWrite_MissingParentDirectory(t *testing.T) {
	fsys := newTestFS()
	r := NewResolverWithEnv(fsys, nil, noEnv)

	_, err := r.Write(context.Background(), "/nowhere/at/all/.dot.ini", "X")
	if err == nil {
		t.Fatal("expected an error for a missing parent directory")
	}
	if _, ok := fsys.Files["/nowhere/at/all/.dot.ini"]; ok {
		t.Error("file must not be written when the parent is missing")
	}
}

func TestWrite_ParentIsAFile(t *testing.T) {
	fsys := newTestFS()
	fsys.Put("/repo/file", "not a dir")
	r := NewResolverWithEnv(fsys, nil, noEnv)

	if _, err := r.Write(context.Background(), "/repo/file/.dot.ini", "X"); err == nil {
		t.Fatal("expected an error when the parent is not a directory")
	}
}

func TestWrite_RefusesMalformedExistingFile(t *testing.T) {
	fsys := newTestFS()
	original := "[dot\nworship_suffix = broken\n"
	fsys.Put(repoINI, original)
	r := NewResolverWithEnv(fsys, &git.MockService{Root: "/repo"}, noEnv)

	_, err := r.Write(context.Background(), repoINI, "X")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if string(fsys.Files[repoINI]) != original {
		t.Error("malformed file must be left untouched")
	}
}

func TestWrite_ReadAndWriteErrors(t *testing.T) {
	fsys := newTestFS()
	fsys.Put(repoINI, suffixINI("R"))
	fsys.ReadErrors[repoINI] = errors.New("permission denied")
	r := NewResolverWithEnv(fsys, nil, noEnv)

	if _, err := r.Write(context.Background(), repoINI, "X"); err == nil || !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("expected read error to surface, got %v", err)
	}

	fsys = newTestFS()
	fsys.Dirs["/repo"] = true
	fsys.WriteErrors[repoINI] = errors.New("disk full")
	r = NewResolverWithEnv(fsys, nil, noEnv)

	if _, err := r.Write(context.Background(), repoINI, "X"); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected write error to surface, got %v", err)
	}
}

func TestWrite_PreservesUnrecognizedContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	original := `; shared settings
[x]
alpha = 1
alpha = 2
q = "hello"
beta = two words

[dot]
worship_suffix = OLD
keep_me = yes

[y]
gamma = #not-a-comment
# trailing note
; another
`
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewResolverWithEnv(&RealFileSystem{}, nil, noEnv)
	written, err := r.Write(context.Background(), path, "BECAUSE I LOVE THE DOT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != path {
		t.Errorf("expected %s, got %s", path, written)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Replace(original, "worship_suffix = OLD", "worship_suffix = BECAUSE I LOVE THE DOT", 1)
	if string(got) != want {
		t.Errorf("file content changed beyond the suffix entry\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWrite_RejectsMultiLineSuffix(t *testing.T) {
	fsys := newTestFS()
	fsys.Dirs["/repo"] = true
	r := NewResolverWithEnv(fsys, nil, noEnv)

	_, err := r.Write(context.Background(), repoINI, "BECAUSE I\n[dot]\nworship_suffix = X")
	if !errors.Is(err, ErrInvalidSuffix) {
		t.Fatalf("expected ErrInvalidSuffix, got %v", err)
	}
	if _, ok := fsys.Files[repoINI]; ok {
		t.Error("nothing must be written for a rejected suffix")
	}
}

func TestWrite_StoresSuffixVerbatim(t *testing.T) {
	fsys := newTestFS()
	fsys.Dirs["/repo"] = true
	r := NewResolverWithEnv(fsys, &git.MockService{Root: "/repo"}, noEnv)

	for _, v := range []string{`"QUOTED"`, "THE DOT # really", `ends with \`} {
		if _, err := r.Write(context.Background(), "", v); err != nil {
			t.Fatalf("write %q: %v", v, err)
		}
		if got := r.Resolve(context.Background()); got.Suffix != v {
			t.Errorf("wrote %q, resolved %q", v, got.Suffix)
		}
	}
}

func TestWrite_ThenResolveInEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	home := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", home)

	r := NewResolverWithEnv(&RealFileSystem{}, nil, noEnv)
	path, err := r.Write(context.Background(), filepath.Join(".", FileName), "BECAUSE I HONOR THE DOT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %s", path)
	}

	got := r.Resolve(context.Background())
	if got.Suffix != "BECAUSE I HONOR THE DOT" {
		t.Errorf("expected written suffix, got %+v", got)
	}
	gotReal, _ := filepath.EvalSymlinks(got.Source)
	wantReal, _ := filepath.EvalSymlinks(filepath.Join(dir, FileName))
	if gotReal != wantReal {
		t.Errorf("expected source %s, got %s", wantReal, got.Source)
	}
}

func TestWrite_OverwriteInvalidatesCache(t *testing.T) {
	fsys := newTestFS()
	fsys.Dirs["/repo"] = true
	r := NewResolverWithEnv(fsys, &git.MockService{Root: "/repo"}, noEnv)
	ctx := context.Background()

	for _, v := range []string{"ONE", "TWO", "THREE"} {
		if _, err := r.Write(ctx, "", v); err != nil {
			t.Fatal(err)
		}
		if got := r.Resolve(ctx); got.Suffix != v {
			t.Errorf("expected %q, got %+v", v, got)
		}
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}
