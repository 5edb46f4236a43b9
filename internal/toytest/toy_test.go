package toytest

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestToy runs the real assembler on the bundled toy dataset. It needs the
// assembler checkout as the working directory and the sample reads in
// data/, so it only runs when FLYE_TOY_TEST=1:
//
//	FLYE_TOY_TEST=1 FLYE_ROOT=/path/to/Flye go test ./internal/toytest -run TestToy -v
func TestToy(t *testing.T) {
	if os.Getenv("FLYE_TOY_TEST") != "1" {
		t.Skip("set FLYE_TOY_TEST=1 to run the assembler toy test")
	}

	cfg := DefaultConfig()
	cfg.WorkDir = os.Getenv("FLYE_ROOT")

	err := RunToyTest(context.Background(), cfg, os.Stdout, os.Stderr)
	require.NoError(t, err)
}
