package tabix

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"chromcheck/internal/proc"
)

func fakeTabix(t *testing.T, body string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "tabix")
	if err := os.WriteFile(fn, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write tabix: %v", err)
	}
	return fn
}

func TestChroms(t *testing.T) {
	bin := fakeTabix(t, "[ \"$1\" = \"-l\" ] || exit 2\nprintf 'chr1\\n  chr2 \\n\\nchrX\\nchr1\\n'\n")
	got, err := Lister{Tabix: bin}.Chroms(context.Background(), "calls.vcf.gz")
	if err != nil {
		t.Fatalf("Chroms: %v", err)
	}
	if want := []string{"chr1", "chr2", "chrX"}; !reflect.DeepEqual(got.Names(), want) {
		t.Fatalf("got %v want %v", got.Names(), want)
	}
}

func TestChromsToolFailure(t *testing.T) {
	bin := fakeTabix(t, "echo 'could not load index' >&2\nexit 1\n")
	_, err := Lister{Tabix: bin}.Chroms(context.Background(), "calls.vcf.gz")
	var ee *proc.ExitError
	if !errors.As(err, &ee) {
		t.Fatalf("want wrapped *proc.ExitError, got %v", err)
	}
}
