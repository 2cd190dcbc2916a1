package password

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	hash, err := h.Hash("password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "password" {
		t.Fatal("Hash() returned plaintext")
	}

	if err := h.Verify(hash, "password"); err != nil {
		t.Errorf("Verify(correct) error = %v", err)
	}
	if err := h.Verify(hash, "wrong"); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify(wrong) error = %v, want ErrMismatch", err)
	}
}

func TestHasher_Errors(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	if _, err := h.Hash(""); err == nil {
		t.Error("Hash(\"\") error = nil, want error")
	}
	if err := h.Verify("", "x"); err == nil {
		t.Error("Verify(empty hash) error = nil, want error")
	}
}

func TestNewHasher_CostFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cost int
		want int
	}{
		{cost: 0, want: bcrypt.DefaultCost},
		{cost: 99, want: bcrypt.DefaultCost},
		{cost: bcrypt.MinCost, want: bcrypt.MinCost},
		{cost: 12, want: 12},
	}
	for _, tt := range tests {
		if got := NewHasher(tt.cost).cost; got != tt.want {
			t.Errorf("NewHasher(%d).cost = %d, want %d", tt.cost, got, tt.want)
		}
	}
}
