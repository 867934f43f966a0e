package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"qdpi-hq/tna/pkg/cli"
)

func TestEstimateCommand(t *testing.T) {
	cfg := writeConfig(t, "")

	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantOut  []string
		wantCode int
	}{
		{
			name:    "arguments",
			args:    []string{"estimate", "-c", cfg, "Some", "sample", "text"},
			wantOut: []string{"Tokens: 3", "Tokens per unit: 100", "Cost: 0.030000 (3/100)"},
		},
		{
			name:    "stdin",
			args:    []string{"estimate", "-c", cfg},
			stdin:   "Some sample text\n",
			wantOut: []string{"Tokens: 3", "(3/100)"},
		},
		{
			name:    "empty input costs nothing",
			args:    []string{"estimate", "-c", cfg, "-"},
			stdin:   "",
			wantOut: []string{"Tokens: 0", "Cost: 0.000000 (0)"},
		},
		{
			name:    "tokens per unit override",
			args:    []string{"estimate", "-c", cfg, "--tokens-per-unit", "3", "a b c d"},
			wantOut: []string{"Tokens: 4", "(4/3)"},
		},
		{
			name:     "zero tokens per unit",
			args:     []string{"estimate", "-c", cfg, "--tokens-per-unit", "0", "text"},
			wantCode: cli.ExitConfig,
		},
		{
			name:     "invalid utf-8",
			args:     []string{"estimate", "-c", cfg},
			stdin:    "bad \xff input",
			wantCode: cli.ExitInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.stdin, tt.args...)

			if code := cli.ExitCode(err); code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (err: %v)", code, tt.wantCode, err)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestEstimateCommandJSON(t *testing.T) {
	cfg := writeConfig(t, "costs:\n  tokens_per_unit: 1000\n")

	out, _, err := execute(t, "", "estimate", "-c", cfg, "-f", "json", "Some sample text")
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	var report estimateReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if report.Tokens != 3 {
		t.Errorf("Tokens = %d, want 3", report.Tokens)
	}
	if report.TokensPerUnit != 1000 {
		t.Errorf("TokensPerUnit = %v, want 1000", report.TokensPerUnit)
	}
	if report.CostExact != "3/1000" {
		t.Errorf("CostExact = %q, want %q", report.CostExact, "3/1000")
	}
	if report.RequestID == "" {
		t.Error("RequestID should be set")
	}
}

func TestEstimateCommandFile(t *testing.T) {
	cfg := writeConfig(t, "")
	input := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(input, []byte("one two\nthree\tfour five"), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	out, _, err := execute(t, "", "estimate", "-c", cfg, "--file", input)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if !strings.Contains(out, "(1/20)") {
		t.Errorf("expected 5/100 reduced to 1/20, got:\n%s", out)
	}

	_, _, err = execute(t, "", "estimate", "-c", cfg, "--file", input, "extra")
	if err == nil {
		t.Error("expected error when combining --file with arguments")
	}
}

func TestTokenizeCommand(t *testing.T) {
	cfg := writeConfig(t, "")

	out, _, err := execute(t, "", "tokenize", "-c", cfg, "<X_READ> Hello jacklyn-variance<Y_INDEX>")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}

	for _, want := range []string{
		"Tokens: 3 (1 special, whitespace)",
		`"<X_READ>" *`,
		`5      "Hello"`,
		`?      "jacklyn-variance<Y_INDEX>"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTokenizeCommandJSON(t *testing.T) {
	cfg := writeConfig(t, "")

	out, _, err := execute(t, "", "tokenize", "-c", cfg, "--format", "json", "<X_READ>Hello jacklyn-variance<Y_INDEX>")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}

	var report tokenizeReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}

	want := []string{"<X_READ>Hello", "jacklyn-variance<Y_INDEX>"}
	if len(report.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(report.Tokens), len(want))
	}
	for i, tok := range report.Tokens {
		if tok.Text != want[i] {
			t.Errorf("token %d = %q, want %q", i, tok.Text, want[i])
		}
		if tok.Special {
			t.Errorf("token %d should not be special", i)
		}
	}
}

func TestVocabCommand(t *testing.T) {
	cfg := writeConfig(t, "")

	out, _, err := execute(t, "", "vocab", "-c", cfg)
	if err != nil {
		t.Fatalf("vocab failed: %v", err)
	}

	for _, want := range []string{
		"Vocabulary size: 10",
		"QDPI tokens: <X_READ> <Y_INDEX> <Z_WRITE>",
		"Special group control: <pad> <unk>",
		"model_type: bpe",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVocabCommandLoadError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	cfgPath := filepath.Join(t.TempDir(), "tna.yaml")
	content := "vocabulary:\n  path: " + missing + "\ntelemetry:\n  logging:\n    level: error\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, _, err := execute(t, "", "vocab", "-c", cfgPath)
	if code := cli.ExitCode(err); code != cli.ExitLoad {
		t.Errorf("exit code = %d, want %d (err: %v)", code, cli.ExitLoad, err)
	}
}

func TestMissingExplicitConfig(t *testing.T) {
	_, _, err := execute(t, "", "vocab", "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	if code := cli.ExitCode(err); code != cli.ExitConfig {
		t.Errorf("exit code = %d, want %d (err: %v)", code, cli.ExitConfig, err)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	cfg := writeConfig(t, "")

	_, _, err := execute(t, "", "estimate", "-c", cfg, "-f", "xml", "text")
	if code := cli.ExitCode(err); code != cli.ExitConfig {
		t.Errorf("exit code = %d, want %d (err: %v)", code, cli.ExitConfig, err)
	}
}

func TestMetricsFlag(t *testing.T) {
	cfg := writeConfig(t, "")

	_, errOut, err := execute(t, "", "estimate", "-c", cfg, "--metrics", "Some sample text")
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	for _, want := range []string{
		"tna_accounting_operations_total",
		"tna_accounting_vocabulary_size 10",
	} {
		if !strings.Contains(errOut, want) {
			t.Errorf("metrics dump missing %q:\n%s", want, errOut)
		}
	}
}
