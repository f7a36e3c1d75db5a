package search

import (
	"os"
	"path/filepath"
	"testing"
)

func buildTree(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	return dir
}

func names(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Name
	}
	return out
}

func TestFilesSubstringMatch(t *testing.T) {
	dir := buildTree(t,
		"Online Retail.xlsx",
		"notes.txt",
		filepath.Join("archive", "retail_2023.csv"),
	)

	got, err := Files(dir, "retail", Options{})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 matches", names(got))
	}
	for _, m := range got {
		if m.SizeBytes != 1 {
			t.Errorf("%s size = %d, want 1", m.Name, m.SizeBytes)
		}
	}
}

func TestFilesWildcardAnchorsWholeName(t *testing.T) {
	dir := buildTree(t, "sales_jan.csv", "sales_feb.csv", "old_sales_jan.csv")

	got, err := Files(dir, "sales_*.csv", Options{})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want the two names starting with sales_", names(got))
	}
	for _, m := range got {
		if m.Name == "old_sales_jan.csv" {
			t.Error("wildcard pattern must match the whole name, not a substring")
		}
	}
}

func TestFilesQuestionMarkWildcard(t *testing.T) {
	dir := buildTree(t, "q1.csv", "q2.csv", "q10.csv")

	got, err := Files(dir, "q?.csv", Options{})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %v, want q1.csv and q2.csv only", names(got))
	}
}

func TestFilesCaseInsensitive(t *testing.T) {
	dir := buildTree(t, "REPORT.CSV")

	got, err := Files(dir, "report", Options{})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %v, want 1 match", names(got))
	}
}

func TestFilesExtensionFilter(t *testing.T) {
	dir := buildTree(t, "data.csv", "data.xlsx", "data.txt")

	// Missing leading dots are tolerated.
	got, err := Files(dir, "data", Options{Extensions: []string{"csv", ".XLSX"}})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want csv and xlsx only", names(got))
	}
	for _, m := range got {
		if m.Name == "data.txt" {
			t.Error("extension filter should drop data.txt")
		}
	}
}

func TestFilesExactMode(t *testing.T) {
	dir := buildTree(t, "sales.csv", "old_sales.csv")

	got, err := Files(dir, "sales.csv", Options{Exact: true})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "sales.csv" {
		t.Errorf("got %v, want exactly sales.csv", names(got))
	}
}

func TestFilesMaxResults(t *testing.T) {
	dir := buildTree(t, "a.csv", "b.csv", "c.csv", "d.csv")

	got, err := Files(dir, "*.csv", Options{MaxResults: 2})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d matches, want cap of 2", len(got))
	}
}

func TestFilesMissingBaseDir(t *testing.T) {
	if _, err := Files(filepath.Join(t.TempDir(), "absent"), "x", Options{}); err == nil {
		t.Fatal("want error for missing base directory")
	}
}

func TestFilesNoMatchesYieldsEmptySlice(t *testing.T) {
	dir := buildTree(t, "a.csv")
	got, err := Files(dir, "zzz", Options{})
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}
