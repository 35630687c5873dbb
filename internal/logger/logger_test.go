package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
		"loud":  zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riverbed.log")
	fc := DefaultFileConfig(path)
	fc.Compress = false
	if err := InitWithFileConfig("warn", fc, false); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = InitWithFileConfig("info", FileConfig{}, false) })

	Named("pond").Info("suppressed below warn")
	Named("pond").Warn("energy spike", zap.Float64("energy", 12.5))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if strings.Contains(text, "suppressed") {
		t.Fatal("info entry written at warn level")
	}
	for _, want := range []string{`"msg":"energy spike"`, `"logger":"pond"`, `"energy":12.5`} {
		if !strings.Contains(text, want) {
			t.Fatalf("log missing %s:\n%s", want, text)
		}
	}
}

func TestNopWithoutOutputs(t *testing.T) {
	if err := InitWithFileConfig("debug", FileConfig{}, false); err != nil {
		t.Fatal(err)
	}
	if Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("logger without outputs should discard entries")
	}
	Sugar.Infow("no panic", "k", 1)
}
