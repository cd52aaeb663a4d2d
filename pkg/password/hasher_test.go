package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *Hasher {
	return NewHasher(bcrypt.MinCost)
}

func TestHasher_HashThenCheck(t *testing.T) {
	h := newTestHasher()

	for _, pw := range []string{"testpassword123", "p", "пароль-з-юнікодом", strings.Repeat("x", 72)} {
		digest, err := h.Hash(pw)
		if err != nil {
			t.Fatalf("Hash(%q): %v", pw, err)
		}
		if digest == pw {
			t.Fatalf("digest must not equal plaintext")
		}
		if !h.Check(pw, digest) {
			t.Errorf("Check(%q) = false, want true", pw)
		}
	}
}

func TestHasher_SaltedDigestsDiffer(t *testing.T) {
	h := newTestHasher()

	first, err := h.Hash("testpassword123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("testpassword123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Fatalf("expected different digests for repeated hashing, got %q twice", first)
	}
	if !h.Check("testpassword123", first) || !h.Check("testpassword123", second) {
		t.Fatalf("both digests must verify the original password")
	}
}

func TestHasher_WrongPassword(t *testing.T) {
	h := newTestHasher()

	digest, _ := h.Hash("goodpassword")
	if h.Check("badpassword", digest) {
		t.Fatalf("Check accepted the wrong password")
	}
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := newTestHasher()

	for _, digest := range []string{"", "not-a-bcrypt-hash", "$2a$10$short"} {
		if h.Check("anything", digest) {
			t.Errorf("Check accepted malformed digest %q", digest)
		}
	}
}

func TestNewHasher_InvalidCostFallsBackToDefault(t *testing.T) {
	if got := NewHasher(0).cost; got != bcrypt.DefaultCost {
		t.Errorf("cost 0: got %d, want %d", got, bcrypt.DefaultCost)
	}
	if got := NewHasher(99).cost; got != bcrypt.DefaultCost {
		t.Errorf("cost 99: got %d, want %d", got, bcrypt.DefaultCost)
	}
	if got := NewHasher(12).cost; got != 12 {
		t.Errorf("cost 12: got %d, want 12", got)
	}
}
