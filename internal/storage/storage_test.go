package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func withTempDataDir(t *testing.T) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "chessplay-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	t.Setenv("XDG_DATA_HOME", tmpDir)
}

func TestStoreWeightsSignature(t *testing.T) {
	withTempDataDir(t)

	s, err := Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if _, found, err := s.WeightsSignature("nn-big.bin"); err != nil || found {
		t.Fatalf("expected no signature recorded yet, found=%v err=%v", found, err)
	}

	if err := s.SetWeightsSignature("nn-big.bin", 0xdeadbeef); err != nil {
		t.Fatalf("SetWeightsSignature: %v", err)
	}

	sig, found, err := s.WeightsSignature("nn-big.bin")
	if err != nil {
		t.Fatalf("WeightsSignature: %v", err)
	}
	if !found {
		t.Fatal("expected signature to be found after Set")
	}
	if sig != 0xdeadbeef {
		t.Errorf("got signature %#x, want %#x", sig, 0xdeadbeef)
	}
}

func TestStoreTablebaseEntry(t *testing.T) {
	withTempDataDir(t)

	s, err := Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	const hash = uint64(0x0123456789abcdef)
	payload := []byte{1, 2, 3, 4}

	if _, found, err := s.TablebaseEntry(hash); err != nil || found {
		t.Fatalf("expected no entry yet, found=%v err=%v", found, err)
	}

	if err := s.SetTablebaseEntry(hash, payload); err != nil {
		t.Fatalf("SetTablebaseEntry: %v", err)
	}

	got, found, err := s.TablebaseEntry(hash)
	if err != nil {
		t.Fatalf("TablebaseEntry: %v", err)
	}
	if !found {
		t.Fatal("expected entry to be found after Set")
	}
	if len(got) != len(payload) {
		t.Fatalf("got payload len %d, want %d", len(got), len(payload))
	}
	for i := range payload {
		if got[i] != payload[i] {
			t.Errorf("byte %d: got %d, want %d", i, got[i], payload[i])
		}
	}
}

func TestDataPaths(t *testing.T) {
	withTempDataDir(t)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	nnueDir, err := GetNNUEDir()
	if err != nil {
		t.Fatalf("GetNNUEDir failed: %v", err)
	}
	if filepath.Dir(nnueDir) != dataDir {
		t.Errorf("GetNNUEDir %s is not under data dir %s", nnueDir, dataDir)
	}
}
