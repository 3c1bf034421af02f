package service

import (
	"context"
	"testing"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	hash, err := h.Hash(context.Background(), "Secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "Secret123" {
		t.Fatalf("hash equals plaintext")
	}

	ok, err := h.Compare(context.Background(), "Secret123", hash)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected match for correct password")
	}
}

func TestBcryptHasher_Mismatch(t *testing.T) {
	h := NewBcryptHasher()

	hash, err := h.Hash(context.Background(), "Secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	ok, err := h.Compare(context.Background(), "wrong", hash)
	if err != nil {
		t.Fatalf("mismatch must not be an error, got: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch for wrong password")
	}
}

func TestBcryptHasher_SaltsIndependently(t *testing.T) {
	h := NewBcryptHasher()

	h1, err := h.Hash(context.Background(), "Secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	h2, err := h.Hash(context.Background(), "Secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct hashes for repeated input")
	}
}
