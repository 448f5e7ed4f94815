package storage

import (
	"bytes"
	"testing"
)

func TestMemDBRoundTrip(t *testing.T) {
	db := NewMemDB()
	defer db.Close()

	if _, err := db.Get([]byte("missing")); err == nil {
		t.Fatal("expected error for missing key")
	}
	if ok, _ := db.Has([]byte("missing")); ok {
		t.Fatal("Has reported a missing key")
	}

	value := []byte("payload")
	if err := db.Put([]byte("k"), value); err != nil {
		t.Fatalf("put: %v", err)
	}
	// The stored value must not alias the caller's slice.
	value[0] = 'X'

	got, err := db.Get([]byte("k"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, []byte("payload")) {
		t.Fatalf("get = %q, want %q", got, "payload")
	}
	if ok, _ := db.Has([]byte("k")); !ok {
		t.Fatal("Has missed a stored key")
	}
}
