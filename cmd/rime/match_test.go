package main

import (
	"bytes"
	"testing"

	"github.com/nihei9/rime/engine"
)

func TestPrintMatches(t *testing.T) {
	var b bytes.Buffer
	err := printMatches(&b, engine.MustCompile(`an`), "banana")
	if err != nil {
		t.Fatal(err)
	}
	want := "1:2: \"an\"\n3:2: \"an\"\n"
	if b.String() != want {
		t.Fatalf("unexpected output: want: %q, got: %q", want, b.String())
	}
}
