package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const testVocabPath = "../../pkg/vocab/testdata/qdpi_vocab.json"

// writeConfig writes a config file into a temp dir and returns its path.
// body is appended after the vocabulary and logging sections.
func writeConfig(t *testing.T, body string) string {
	t.Helper()

	vocabPath, err := filepath.Abs(testVocabPath)
	if err != nil {
		t.Fatalf("failed to resolve vocabulary path: %v", err)
	}

	content := "vocabulary:\n  path: " + vocabPath + "\n" +
		"telemetry:\n  logging:\n    level: error\n" + body

	path := filepath.Join(t.TempDir(), "tna.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// execute runs the root command with args and stdin and returns stdout and
// stderr. Flags and contexts are reset first so runs do not leak into each
// other.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	err := executeContext(t, context.Background(), stdin, &out, &errOut, args...)
	return out.String(), errOut.String(), err
}

func executeContext(t *testing.T, ctx context.Context, stdin string, out, errOut io.Writer, args ...string) error {
	t.Helper()

	resetCommand(rootCmd)

	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	return rootCmd.ExecuteContext(ctx)
}

// syncBuffer is a bytes.Buffer safe for a command writing from another
// goroutine while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func resetCommand(cmd *cobra.Command) {
	cmd.SetContext(nil)
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCommand(sub)
	}
}
