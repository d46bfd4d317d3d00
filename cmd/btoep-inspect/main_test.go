package main

import (
	"bytes"
	"testing"

	"github.com/tniessen/btoep/internal/cli"
	"github.com/tniessen/btoep/internal/dataset"
	"github.com/tniessen/btoep/internal/fsx"
)

func newInspectHandle(t *testing.T) *dataset.Handle {
	t.Helper()

	fs := fsx.NewReal()
	paths := dataset.Resolve(t.TempDir()+"/data", "", "")

	if err := dataset.Create(fs, paths, 1024); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := dataset.Add(fs, paths, 10, bytes.NewReader(make([]byte, 20)), dataset.PolicyError); err != nil {
		t.Fatalf("Add: %v", err)
	}

	h, err := dataset.Open(fs, paths, dataset.ModeReadOnly)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	t.Cleanup(func() { _ = h.Close() })

	return h
}

func Test_Dispatch_Ranges_ListsIndexedRanges(t *testing.T) {
	t.Parallel()

	h := newInspectHandle(t)

	var out, errOut bytes.Buffer

	if exit := dispatch(cli.NewIO(&out, &errOut), h, "ranges"); exit {
		t.Fatalf("ranges should not exit the repl")
	}

	want := "10...30\n"
	if out.String() != want {
		t.Fatalf("stdout = %q, want %q", out.String(), want)
	}
}

func Test_Dispatch_Query_ReportsDataAndNoData(t *testing.T) {
	t.Parallel()

	h := newInspectHandle(t)

	var out bytes.Buffer

	dispatch(cli.NewIO(&out, &bytes.Buffer{}), h, "query 15")
	dispatch(cli.NewIO(&out, &bytes.Buffer{}), h, "query 5")

	if got := out.String(); got != "data, range 10...30\nno data\n" {
		t.Fatalf("query 15 / query 5 stdout = %q", got)
	}
}

func Test_Dispatch_NextDataAndNextMissing(t *testing.T) {
	t.Parallel()

	h := newInspectHandle(t)

	var outData bytes.Buffer
	dispatch(cli.NewIO(&outData, &bytes.Buffer{}), h, "next-data 0")

	if got := outData.String(); got != "10\n" {
		t.Fatalf("next-data stdout = %q", got)
	}

	var outMissing bytes.Buffer
	dispatch(cli.NewIO(&outMissing, &bytes.Buffer{}), h, "next-missing 10")

	if got := outMissing.String(); got != "30\n" {
		t.Fatalf("next-missing stdout = %q", got)
	}
}

func Test_Dispatch_Size_PrintsDataFileLength(t *testing.T) {
	t.Parallel()

	h := newInspectHandle(t)

	var out bytes.Buffer
	dispatch(cli.NewIO(&out, &bytes.Buffer{}), h, "size")

	if got := out.String(); got != "1024\n" {
		t.Fatalf("size stdout = %q", got)
	}
}

func Test_Dispatch_UnknownCommand_WritesToStderr(t *testing.T) {
	t.Parallel()

	h := newInspectHandle(t)

	var out, errOut bytes.Buffer
	exit := dispatch(cli.NewIO(&out, &errOut), h, "bogus")

	if exit {
		t.Fatalf("unknown command should not exit the repl")
	}

	if out.Len() != 0 {
		t.Fatalf("expected no stdout, got %q", out.String())
	}

	if errOut.Len() == 0 {
		t.Fatalf("expected an error message on stderr")
	}
}

func Test_Dispatch_Exit_ReturnsTrue(t *testing.T) {
	t.Parallel()

	h := newInspectHandle(t)

	if exit := dispatch(cli.NewIO(&bytes.Buffer{}, &bytes.Buffer{}), h, "exit"); !exit {
		t.Fatalf("exit command should return true")
	}
}
