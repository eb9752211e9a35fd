package production

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestArchive_ListAndDelete(t *testing.T) {
	dir := t.TempDir()
	jp, err := NewJSONPersister(dir)
	if err != nil {
		t.Fatal(err)
	}
	yp, err := NewYAMLPersister(dir)
	if err != nil {
		t.Fatal(err)
	}

	// "beta" exists in both formats and must be listed once.
	if err := jp.Save(context.Background(), testSnapshot(t, "alpha")); err != nil {
		t.Fatal(err)
	}
	if err := jp.Save(context.Background(), testSnapshot(t, "beta")); err != nil {
		t.Fatal(err)
	}
	if err := yp.Save(context.Background(), testSnapshot(t, "beta")); err != nil {
		t.Fatal(err)
	}

	archive, err := NewArchive(dir)
	if err != nil {
		t.Fatal(err)
	}

	ids, err := archive.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if want := []string{"alpha", "beta"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("List = %v, want %v", ids, want)
	}

	if err := archive.Delete("beta"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	ids, err = archive.List()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"alpha"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("List after delete = %v, want %v", ids, want)
	}
}

func TestArchive_DeleteMissing(t *testing.T) {
	archive, err := NewArchive(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := archive.Delete("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete error = %v, want ErrNotFound", err)
	}
}

func TestArchive_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	jp, err := NewJSONPersister(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := jp.Save(context.Background(), testSnapshot(t, "only")); err != nil {
		t.Fatal(err)
	}

	archive, err := NewArchive(dir)
	if err != nil {
		t.Fatal(err)
	}
	writeJunk(t, dir, "notes.txt")
	writeJunk(t, dir, "render.png")

	ids, err := archive.List()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"only"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("List = %v, want %v", ids, want)
	}
}
