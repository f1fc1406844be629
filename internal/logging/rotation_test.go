package logging

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// payload returns a write of exactly 33 bytes tagged so the test can tell
// which rotation generation a file holds.
func payload(tag string) []byte {
	return []byte(fmt.Sprintf("%s %s\n", tag, strings.Repeat("x", 30)))
}

func readBackup(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(content)
}

func TestNewRotatingWriter(t *testing.T) {
	t.Run("creates the log file and parents", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "nested", "dir", "hestia.log")

		rw, err := NewRotatingWriter(logPath, DefaultRotationConfig())
		if err != nil {
			t.Fatalf("NewRotatingWriter failed: %v", err)
		}
		defer func() { _ = rw.Close() }()

		if _, err := os.Stat(logPath); os.IsNotExist(err) {
			t.Errorf("log file was not created at %s", logPath)
		}
		if rw.FilePath() != logPath {
			t.Errorf("FilePath() = %s, want %s", rw.FilePath(), logPath)
		}
	})

	t.Run("appends to an existing file and counts its size", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "hestia.log")

		initial := []byte("from the previous run\n")
		if err := os.WriteFile(logPath, initial, 0644); err != nil {
			t.Fatalf("failed to seed log file: %v", err)
		}

		rw, err := NewRotatingWriter(logPath, DefaultRotationConfig())
		if err != nil {
			t.Fatalf("NewRotatingWriter failed: %v", err)
		}
		if rw.CurrentSize() != int64(len(initial)) {
			t.Errorf("CurrentSize() = %d, want the seeded %d", rw.CurrentSize(), len(initial))
		}

		if _, err := rw.Write([]byte("from this run\n")); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		_ = rw.Close()

		content := readBackup(t, logPath)
		if !strings.Contains(content, "from the previous run") {
			t.Error("seeded content was lost")
		}
		if !strings.Contains(content, "from this run") {
			t.Error("appended content was not written")
		}
	})
}

func TestRotatingWriterWrite(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "hestia.log")

	rw, err := NewRotatingWriter(logPath, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}

	data := payload("A")
	n, err := rw.Write(data)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != len(data) {
		t.Errorf("Write reported %d bytes, want %d", n, len(data))
	}
	if rw.CurrentSize() != int64(len(data)) {
		t.Errorf("CurrentSize() = %d, want %d", rw.CurrentSize(), len(data))
	}

	_ = rw.Close()
	if _, err := rw.Write(payload("B")); err == nil {
		t.Error("Write after Close should fail")
	}

	if got := readBackup(t, logPath); got != string(data) {
		t.Errorf("file content = %q, want %q", got, data)
	}
}

func TestRotatingWriterRotation(t *testing.T) {
	// Each payload is 33 bytes; a 50 byte cap rotates on every write after
	// the first, so every file holds exactly one tagged payload.
	newSmallWriter := func(t *testing.T, logPath string, backups int) *RotatingWriter {
		t.Helper()
		rw, err := NewRotatingWriter(logPath, RotationConfig{MaxBackups: backups})
		if err != nil {
			t.Fatalf("NewRotatingWriter failed: %v", err)
		}
		rw.maxSizeB = 50
		return rw
	}

	t.Run("backups hold generations newest first", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "hestia.log")
		rw := newSmallWriter(t, logPath, 3)

		for _, tag := range []string{"A", "B", "C"} {
			if _, err := rw.Write(payload(tag)); err != nil {
				t.Fatalf("Write(%s) failed: %v", tag, err)
			}
		}
		_ = rw.Close()

		if got := readBackup(t, logPath); !strings.HasPrefix(got, "C") {
			t.Errorf("active file holds %q, want the newest write C", got)
		}
		if got := readBackup(t, logPath+".1"); !strings.HasPrefix(got, "B") {
			t.Errorf("backup .1 holds %q, want B", got)
		}
		if got := readBackup(t, logPath+".2"); !strings.HasPrefix(got, "A") {
			t.Errorf("backup .2 holds %q, want A", got)
		}
	})

	t.Run("oldest backup dropped beyond the retention count", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "hestia.log")
		rw := newSmallWriter(t, logPath, 2)

		for _, tag := range []string{"A", "B", "C", "D"} {
			if _, err := rw.Write(payload(tag)); err != nil {
				t.Fatalf("Write(%s) failed: %v", tag, err)
			}
		}
		_ = rw.Close()

		if got := readBackup(t, logPath+".1"); !strings.HasPrefix(got, "C") {
			t.Errorf("backup .1 holds %q, want C", got)
		}
		if got := readBackup(t, logPath+".2"); !strings.HasPrefix(got, "B") {
			t.Errorf("backup .2 holds %q, want B", got)
		}
		if _, err := os.Stat(logPath + ".3"); err == nil {
			t.Error("backup .3 should not exist with MaxBackups=2")
		}
	})

	t.Run("zero max size disables rotation", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "hestia.log")

		rw, err := NewRotatingWriter(logPath, RotationConfig{MaxBackups: 3})
		if err != nil {
			t.Fatalf("NewRotatingWriter failed: %v", err)
		}
		for i := 0; i < 100; i++ {
			_, _ = rw.Write(payload("A"))
		}
		_ = rw.Close()

		if _, err := os.Stat(logPath + ".1"); err == nil {
			t.Error("no backup should exist when rotation is disabled")
		}
	})

	t.Run("zero backups keeps only the active file", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "hestia.log")
		rw := newSmallWriter(t, logPath, 0)

		for _, tag := range []string{"A", "B", "C"} {
			_, _ = rw.Write(payload(tag))
		}
		_ = rw.Close()

		if _, err := os.Stat(logPath + ".1"); err == nil {
			t.Error("backup .1 should not survive with MaxBackups=0")
		}
		if got := readBackup(t, logPath); !strings.HasPrefix(got, "C") {
			t.Errorf("active file holds %q, want the newest write C", got)
		}
	})
}

// A backup may sit on disk compressed or plain depending on when the async
// compressor last finished; the shift must carry the .gz suffix along.
func TestBackupShiftKeepsCompressedSuffix(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "hestia.log")

	if err := os.WriteFile(logPath+".1.gz", []byte("pretend gzip data"), 0644); err != nil {
		t.Fatalf("failed to seed compressed backup: %v", err)
	}

	rw, err := NewRotatingWriter(logPath, RotationConfig{MaxBackups: 3})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	rw.maxSizeB = 50

	_, _ = rw.Write(payload("A"))
	_, _ = rw.Write(payload("B")) // triggers the rotation that shifts .1.gz
	_ = rw.Close()

	if _, err := os.Stat(logPath + ".2.gz"); os.IsNotExist(err) {
		t.Error("compressed backup was not shifted to .2.gz")
	}
	if _, err := os.Stat(logPath + ".1.gz"); err == nil {
		t.Error("stale .1.gz left behind after the shift")
	}
	if got := readBackup(t, logPath+".1"); !strings.HasPrefix(got, "A") {
		t.Errorf("backup .1 holds %q, want the rotated active file A", got)
	}
}

func TestRotatingWriterCompression(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "hestia.log")

	rw, err := NewRotatingWriter(logPath, RotationConfig{MaxBackups: 3, Compress: true})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	rw.maxSizeB = 50

	// One rotation only, so a single compressor goroutine runs.
	_, _ = rw.Write(payload("A"))
	_, _ = rw.Write(payload("B"))
	_ = rw.Close()

	// The compressor runs asynchronously after the rotation and removes the
	// plain backup as its final step, so its disappearance means the .gz is
	// complete.
	gzPath := logPath + ".1.gz"
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(logPath + ".1"); os.IsNotExist(err) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("plain backup was never compressed away")
		}
		time.Sleep(10 * time.Millisecond)
	}

	gzFile, err := os.Open(gzPath)
	if err != nil {
		t.Fatalf("failed to open compressed backup: %v", err)
	}
	defer func() { _ = gzFile.Close() }()

	gzReader, err := gzip.NewReader(gzFile)
	if err != nil {
		t.Fatalf("failed to create gzip reader: %v", err)
	}
	defer func() { _ = gzReader.Close() }()

	content, err := io.ReadAll(gzReader)
	if err != nil {
		t.Fatalf("failed to decompress backup: %v", err)
	}
	if !strings.HasPrefix(string(content), "A") {
		t.Errorf("decompressed backup holds %q, want the first write A", content)
	}
}

func TestRotatingWriterConcurrency(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "hestia.log")

	rw, err := NewRotatingWriter(logPath, RotationConfig{MaxBackups: 100})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	rw.maxSizeB = 2000

	const goroutines = 10
	const writesPer = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < writesPer; j++ {
				if _, err := rw.Write(payload("W")); err != nil {
					t.Errorf("goroutine %d write %d failed: %v", id, j, err)
				}
			}
		}(i)
	}
	wg.Wait()
	_ = rw.Close()

	// Every line must land somewhere: the active file or a numbered backup.
	totalLines := 0
	if content, err := os.ReadFile(logPath); err == nil {
		totalLines += strings.Count(string(content), "\n")
	}
	for i := 1; i <= 100; i++ {
		if content, err := os.ReadFile(fmt.Sprintf("%s.%d", logPath, i)); err == nil {
			totalLines += strings.Count(string(content), "\n")
		}
	}

	if want := goroutines * writesPer; totalLines != want {
		t.Errorf("lines across active file and backups = %d, want %d", totalLines, want)
	}
}

func TestRotatingWriterSyncAndClose(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "hestia.log")

	rw, err := NewRotatingWriter(logPath, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}

	_, _ = rw.Write(payload("A"))
	if err := rw.Sync(); err != nil {
		t.Errorf("Sync failed: %v", err)
	}
	if got := readBackup(t, logPath); !strings.HasPrefix(got, "A") {
		t.Error("content was not flushed to disk")
	}

	if err := rw.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
	if err := rw.Sync(); err != nil {
		t.Errorf("Sync after Close should be a no-op, got %v", err)
	}
}

func TestNewLoggerWithRotation(t *testing.T) {
	t.Run("logs JSON through the rotating sink", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "hestia.log")

		logger, err := NewLoggerWithRotation(logPath, LevelDebug, DefaultRotationConfig())
		if err != nil {
			t.Fatalf("NewLoggerWithRotation failed: %v", err)
		}
		if _, ok := logger.out.(*RotatingWriter); !ok {
			t.Error("expected the logger sink to be a RotatingWriter")
		}

		logger.Info("claim granted", "task", "temperature")
		_ = logger.Close()

		var entry map[string]any
		if err := json.Unmarshal([]byte(readBackup(t, logPath)), &entry); err != nil {
			t.Fatalf("failed to parse log entry: %v", err)
		}
		if entry["msg"] != "claim granted" {
			t.Errorf(`msg = %v, want "claim granted"`, entry["msg"])
		}
		if entry["task"] != "temperature" {
			t.Errorf(`task = %v, want "temperature"`, entry["task"])
		}
	})

	t.Run("empty path falls back to stderr without rotation", func(t *testing.T) {
		logger, err := NewLoggerWithRotation("", LevelInfo, DefaultRotationConfig())
		if err != nil {
			t.Fatalf("NewLoggerWithRotation failed: %v", err)
		}
		defer func() { _ = logger.Close() }()

		if logger.out != nil {
			t.Error("expected no closeable sink when path is empty")
		}
	})

	t.Run("rotation triggers under sustained logging", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "hestia.log")

		logger, err := NewLoggerWithRotation(logPath, LevelDebug, RotationConfig{MaxBackups: 3})
		if err != nil {
			t.Fatalf("NewLoggerWithRotation failed: %v", err)
		}
		logger.out.(*RotatingWriter).maxSizeB = 200

		for i := 0; i < 10; i++ {
			logger.Info("repeated message long enough to overflow the cap", "iteration", i)
		}
		_ = logger.Close()

		if _, err := os.Stat(logPath + ".1"); os.IsNotExist(err) {
			t.Error("backup file was not created after rotation")
		}
	})

	t.Run("child loggers share the sink", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "hestia.log")

		logger, err := NewLoggerWithRotation(logPath, LevelDebug, DefaultRotationConfig())
		if err != nil {
			t.Fatalf("NewLoggerWithRotation failed: %v", err)
		}
		defer func() { _ = logger.Close() }()

		child := logger.WithTask("temperature").WithComponent("hub")
		if child.out != logger.out {
			t.Error("child logger should share the parent's sink")
		}
	})
}

func TestDefaultRotationConfig(t *testing.T) {
	config := DefaultRotationConfig()
	if config.MaxSizeMB != 10 || config.MaxBackups != 3 || config.Compress {
		t.Errorf("DefaultRotationConfig() = %+v, want 10MB, 3 backups, no compression", config)
	}
}
