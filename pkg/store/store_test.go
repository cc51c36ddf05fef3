package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestLoadWithoutSaveReturnsErrNoConfig(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "harness.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	_, err = s.Load(context.Background())
	if !errors.Is(err, ErrNoConfig) {
		t.Errorf("got %v, want ErrNoConfig", err)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	want := Config{
		ControllerAddr: "tcp://10.0.0.5:8080",
		DUTNodeID:      0x1234,
		DUTIEEEAddress: "00:11:22:33:44:55:66:77",
	}
	if err := s.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSaveUpsertsExistingRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Save(ctx, Config{ControllerAddr: "tcp://old:1", DUTNodeID: 1, DUTIEEEAddress: "old"}); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := s.Save(ctx, Config{ControllerAddr: "tcp://new:2", DUTNodeID: 2, DUTIEEEAddress: "new"}); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{ControllerAddr: "tcp://new:2", DUTNodeID: 2, DUTIEEEAddress: "new"}
	if got != want {
		t.Errorf("got %+v, want %+v (second save should overwrite, not duplicate)", got, want)
	}
}

func TestReopenPersistsAcrossHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	want := Config{ControllerAddr: "tcp://10.0.0.9:8080", DUTNodeID: 0x9, DUTIEEEAddress: "aa:bb"}
	if err := s1.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer s2.Close()

	got, err := s2.Load(context.Background())
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
