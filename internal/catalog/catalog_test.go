package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeAssets(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}
	return dir
}

func TestLoadLexicographicOrder(t *testing.T) {
	dir := writeAssets(t, "stranger.mp4", "high_ranking.mp4", "nonsocial.avi", "low_ranking.mp4")

	c, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"high_ranking", "low_ranking", "nonsocial", "stranger"}
	if got := c.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
	if got := c.AssetPath("nonsocial"); got != filepath.Join(dir, "nonsocial.avi") {
		t.Errorf("AssetPath(nonsocial) = %q", got)
	}
}

func TestLoadDeclaredOrderFirst(t *testing.T) {
	dir := writeAssets(t, "a.mp4", "b.mp4", "c.mp4", "d.mp4")

	c, err := Load(dir, []string{"c", "a"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"c", "a", "b", "d"}
	if got := c.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestLoadDeclaredMissing(t *testing.T) {
	dir := writeAssets(t, "a.mp4")

	_, err := Load(dir, []string{"zzz"})
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("err = %v, want ErrCatalogUnavailable", err)
	}
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), nil)
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("err = %v, want ErrCatalogUnavailable", err)
	}
}

func TestLoadSkipsHiddenAndDirs(t *testing.T) {
	dir := writeAssets(t, ".DS_Store", "x.mp4")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	c, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := c.List(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("List() = %v, want [x]", got)
	}
}

func TestLoadDuplicateStemKeepsFirst(t *testing.T) {
	dir := writeAssets(t, "x.mp4", "x.avi")

	c, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if got := c.AssetPath("x"); got != filepath.Join(dir, "x.avi") {
		t.Errorf("AssetPath(x) = %q, want x.avi", got)
	}
}

func TestListIsCopy(t *testing.T) {
	c := New([]string{"a", "b"}, nil)
	l := c.List()
	l[0] = "mutated"
	if c.List()[0] != "a" {
		t.Error("List() exposed internal slice")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"high_ranking", "High Ranking"},
		{"nonsocial", "Nonsocial"},
		{"LOW_ranking", "Low Ranking"},
		{"a_b_c", "A B C"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.id); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestImages(t *testing.T) {
	dir := writeAssets(t, "stranger_left.png", "stranger_right.jpg", "other_left.png")

	imgs := Images(dir, "stranger")
	if imgs.Left != filepath.Join(dir, "stranger_left.png") {
		t.Errorf("Left = %q", imgs.Left)
	}
	if imgs.Right != filepath.Join(dir, "stranger_right.jpg") {
		t.Errorf("Right = %q", imgs.Right)
	}

	if got := Images(dir, "missing"); got != (CardImages{}) {
		t.Errorf("Images(missing) = %+v, want zero", got)
	}
}
