package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"qdpi-hq/tna/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid JSON config",
			config:  Config{Level: "info", Format: "json", RedactPII: true},
			wantErr: false,
		},
		{
			name:    "valid text config",
			config:  Config{Level: "debug", Format: "text"},
			wantErr: false,
		},
		{
			name:    "console is text",
			config:  Config{Level: "warn", Format: "console"},
			wantErr: false,
		},
		{
			name:    "defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "invalid log level",
			config:  Config{Level: "invalid", Format: "json"},
			wantErr: true,
		},
		{
			name:    "invalid format",
			config:  Config{Level: "info", Format: "invalid"},
			wantErr: true,
		},
		{
			name: "invalid redact pattern",
			config: Config{
				RedactPII:      true,
				RedactPatterns: []config.RedactPattern{{Name: "bad", Pattern: "("}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}
			_, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := config.DefaultConfig()
	cfg.Telemetry.Logging.Level = "debug"

	logger, err := FromConfig(&cfg.Telemetry.Logging, buf)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	logger.Debug("hello")

	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("expected JSON debug record, got %q", buf.String())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logMethod func(*Logger, string)
		wantLog   bool
	}{
		{
			name:      "debug level logs debug",
			logLevel:  "debug",
			logMethod: func(l *Logger, msg string) { l.Debug(msg) },
			wantLog:   true,
		},
		{
			name:      "info level filters debug",
			logLevel:  "info",
			logMethod: func(l *Logger, msg string) { l.Debug(msg) },
			wantLog:   false,
		},
		{
			name:      "info level logs warn",
			logLevel:  "info",
			logMethod: func(l *Logger, msg string) { l.Warn(msg) },
			wantLog:   true,
		},
		{
			name:      "error level filters warn",
			logLevel:  "error",
			logMethod: func(l *Logger, msg string) { l.Warn(msg) },
			wantLog:   false,
		},
		{
			name:      "error level logs error",
			logLevel:  "error",
			logMethod: func(l *Logger, msg string) { l.Error(msg) },
			wantLog:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(Config{Level: tt.logLevel, Format: "json", Writer: buf})
			if err != nil {
				t.Fatal(err)
			}

			tt.logMethod(logger, "test message")

			gotLog := strings.Contains(buf.String(), "test message")
			if gotLog != tt.wantLog {
				t.Errorf("got log = %v, want %v (output %q)", gotLog, tt.wantLog, buf.String())
			}
		})
	}
}

func TestLogger_StructuredFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("estimated", "tokens", 3, "cost", "3/100")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["tokens"] != float64(3) {
		t.Errorf("tokens = %v, want 3", record["tokens"])
	}
	if record["cost"] != "3/100" {
		t.Errorf("cost = %v, want 3/100", record["cost"])
	}
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	child := logger.With("component", "vocab")
	child.Info("loaded")

	if !strings.Contains(buf.String(), `"component":"vocab"`) {
		t.Errorf("expected component field, got %q", buf.String())
	}
}

func TestLogger_ContextMethods(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "debug", Format: "json", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithOperation(ctx, "estimate")

	logger.DebugContext(ctx, "debug")
	logger.InfoContext(ctx, "info")
	logger.WarnContext(ctx, "warn")
	logger.ErrorContext(ctx, "error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 records, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.Contains(line, `"request_id":"req-123"`) {
			t.Errorf("missing request_id in %q", line)
		}
		if !strings.Contains(line, `"operation":"estimate"`) {
			t.Errorf("missing operation in %q", line)
		}
	}
}

func TestLogger_WithContext(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	if got := logger.WithContext(context.Background()); got != logger {
		t.Error("empty context should return the same logger")
	}

	ctx := WithStrategy(context.Background(), "whitespace")
	logger.WithContext(ctx).Info("tokenized")

	if !strings.Contains(buf.String(), `"strategy":"whitespace"`) {
		t.Errorf("expected strategy field, got %q", buf.String())
	}
}

func TestLogger_PIIRedaction(t *testing.T) {
	tests := []struct {
		name      string
		redact    bool
		args      []any
		wantIn    string
		wantNotIn string
	}{
		{
			name:      "email in text",
			redact:    true,
			args:      []any{"text", "contact jane@example.com now"},
			wantIn:    "***@***",
			wantNotIn: "jane@example.com",
		},
		{
			name:      "sensitive key",
			redact:    true,
			args:      []any{"api_key", "sk-abcdef123456"},
			wantIn:    "sk-a***",
			wantNotIn: "sk-abcdef123456",
		},
		{
			name:      "redaction disabled",
			redact:    false,
			args:      []any{"text", "contact jane@example.com now"},
			wantIn:    "jane@example.com",
			wantNotIn: "***@***",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(Config{Level: "info", Format: "json", RedactPII: tt.redact, Writer: buf})
			if err != nil {
				t.Fatal(err)
			}

			logger.Info("input", tt.args...)

			out := buf.String()
			if !strings.Contains(out, tt.wantIn) {
				t.Errorf("expected %q in %q", tt.wantIn, out)
			}
			if strings.Contains(out, tt.wantNotIn) {
				t.Errorf("did not expect %q in %q", tt.wantNotIn, out)
			}
		})
	}
}

func TestLogger_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: "json", want: `"msg":"hello"`},
		{format: "text", want: "msg=hello"},
		{format: "console", want: "msg=hello"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(Config{Format: tt.format, Writer: buf})
			if err != nil {
				t.Fatal(err)
			}
			logger.Info("hello")
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in %q", tt.want, buf.String())
			}
		})
	}
}

func TestLogger_AddSource(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Format: "json", AddSource: true, Writer: buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("with source")

	if !strings.Contains(buf.String(), `"source"`) {
		t.Errorf("expected source field, got %q", buf.String())
	}
}

func TestLogger_SetLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}
	child := logger.With("component", "cli")

	if child.Enabled(slog.LevelDebug) {
		t.Fatal("debug should be disabled at info level")
	}
	if err := logger.SetLevel("debug"); err != nil {
		t.Fatal(err)
	}
	if !child.Enabled(slog.LevelDebug) {
		t.Error("level change should reach derived loggers")
	}
	if err := logger.SetLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	if logger.Enabled(slog.LevelError) {
		t.Error("nop logger should have every level disabled")
	}
	logger.Error("discarded")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"DEBUG", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    LogFormat
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"", FormatJSON, false},
		{"TEXT", FormatText, false},
		{"console", FormatText, false},
		{"xml", FormatJSON, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
