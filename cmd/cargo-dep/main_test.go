package main

import (
	"bytes"
	"fmt"
	"testing"

	deperrors "github.com/matzehuels/cargo-dep/pkg/errors"
)

func TestPrintError(t *testing.T) {
	err := deperrors.Wrap(deperrors.ErrCodeMetadataUnavailable,
		fmt.Errorf("exit status 101: error: could not find `Cargo.toml`"),
		"failed to load cargo metadata")

	var buf bytes.Buffer
	printError(&buf, err)

	want := "Error: failed to load cargo metadata\n" +
		"Caused by: exit status 101: error: could not find `Cargo.toml`\n"
	if buf.String() != want {
		t.Errorf("printError() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestPrintErrorPlain(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, fmt.Errorf("unknown flag: --bogus"))
	if buf.String() != "Error: unknown flag: --bogus\n" {
		t.Errorf("printError() = %q", buf.String())
	}
}
