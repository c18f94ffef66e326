package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddAndLookup(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("docs/con_overview.adoc", []byte("= Overview\n"), 0)
	if id1 != 0 {
		t.Errorf("expected first FileID to be 0, got %d", id1)
	}

	got, ok := fs.Lookup("docs/con_overview.adoc")
	if !ok {
		t.Fatal("expected file to exist after Add")
	}
	if got != id1 {
		t.Errorf("Lookup = %d, want %d", got, id1)
	}

	// a repeated path gets a fresh id, the index tracks the latest
	id2 := fs.Add("docs/con_overview.adoc", []byte("= Overview v2\n"), 0)
	if id2 != 1 {
		t.Errorf("expected second FileID to be 1, got %d", id2)
	}
	got, _ = fs.Lookup("docs/con_overview.adoc")
	if got != id2 {
		t.Errorf("Lookup after re-add = %d, want %d", got, id2)
	}

	if fs.Get(id1) == nil || fs.Get(id1).Text() != "= Overview\n" {
		t.Error("first version should remain addressable by its id")
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestFileSetGetUnknown(t *testing.T) {
	fs := NewFileSet()
	if fs.Get(42) != nil {
		t.Error("Get with unknown id should return nil")
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proc_install.adoc")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("= Title\r\n\r\nText\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	file := fs.Get(id)
	if file.Text() != "= Title\n\nText\n" {
		t.Errorf("normalized content = %q", file.Text())
	}
	if file.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
	if file.Basename() != "proc_install.adoc" {
		t.Errorf("Basename = %q", file.Basename())
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("stdin.adoc", []byte("a\r\nb\n"))
	file := fs.Get(id)
	if file.Text() != "a\nb\n" {
		t.Errorf("virtual content = %q", file.Text())
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
}

func TestHashDistinguishesContent(t *testing.T) {
	fs := NewFileSet()
	a := fs.Get(fs.Add("a.adoc", []byte("one"), 0))
	b := fs.Get(fs.Add("b.adoc", []byte("two"), 0))
	c := fs.Get(fs.Add("c.adoc", []byte("one"), 0))
	if a.Hash == b.Hash {
		t.Error("different content must hash differently")
	}
	if a.Hash != c.Hash {
		t.Error("identical content must hash identically")
	}
}
