package kv

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func openDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return db
}

func TestDB_ReadWrite(t *testing.T) {
	db := openDB(t)

	// a missing key reads as false
	var got []record
	if db.Read("students", &got) {
		t.Error("Read() reported ok for a missing key")
	}

	want := []record{{ID: "001", Name: "Amara Moyo"}}
	if !db.Write("students", want) {
		t.Fatal("Write() failed")
	}
	if !db.Read("students", &got) {
		t.Fatal("Read() failed after write")
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("Read() = %+v, want %+v", got, want)
	}

	// writes replace the whole collection
	if !db.Write("students", []record{}) {
		t.Fatal("Write() failed")
	}
	got = nil
	if !db.Read("students", &got) {
		t.Fatal("Read() failed after write")
	}
	if len(got) != 0 {
		t.Errorf("Read() = %+v, want empty", got)
	}
}

func TestDB_ReadMalformed(t *testing.T) {
	db := openDB(t)

	if err := ioutil.WriteFile(filepath.Join(db.dir, "students.json"), []byte("{oops"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	var got []record
	if db.Read("students", &got) {
		t.Error("Read() reported ok for malformed data")
	}
}

func TestDB_Delete(t *testing.T) {
	db := openDB(t)

	if !db.Write("schoolCurrency", "ZWL") {
		t.Fatal("Write() failed")
	}
	if !db.Delete("schoolCurrency") {
		t.Fatal("Delete() failed")
	}
	var got string
	if db.Read("schoolCurrency", &got) {
		t.Error("Read() reported ok after delete")
	}

	// deleting an absent key succeeds
	if !db.Delete("schoolCurrency") {
		t.Error("Delete() failed for an absent key")
	}
}

func TestDB_WriteLeavesNoTempFiles(t *testing.T) {
	db := openDB(t)

	if !db.Write("students", []record{{ID: "001"}}) {
		t.Fatal("Write() failed")
	}

	entries, err := os.ReadDir(db.dir)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "students.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("data dir = %v, want [students.json]", names)
	}
}

func TestDB_Watch(t *testing.T) {
	db := openDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := db.Watch(ctx, "attendanceNotifications")
	if err != nil {
		t.Fatalf("Watch() failed: %v", err)
	}

	// a write from a second handle over the same directory is observed
	other, err := Open(db.dir, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if !other.Write("attendanceNotifications", []record{{ID: "N00001"}}) {
		t.Fatal("Write() failed")
	}

	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatal("Watch() reported no event")
	}

	// cancellation closes the channel
	cancel()
	select {
	case _, ok := <-events:
		if ok {
			return // drain a pending event; closure follows
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch() channel not closed after cancel")
	}
}
