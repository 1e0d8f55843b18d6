package security

import (
	"testing"
	"time"

	"github.com/nexapay/admin-portal/internal/core/domain"
)

func testPayload(expiresAt time.Time) domain.SessionPayload {
	return domain.SessionPayload{
		UserID:                "u-100",
		UID:                   "u-100",
		Token:                 "gateway-bearer-token",
		RefreshToken:          "gateway-refresh-token",
		Username:              "alice",
		Name:                  "Alice Smith",
		Email:                 "alice@example.com",
		Roles:                 []string{"Operations", "Viewer"},
		UserType:              "staff",
		RequirePasswordChange: true,
		ExpiresAt:             expiresAt.UnixMilli(),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec, err := NewSessionCodec("test-secret", 12*time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	payload := testPayload(time.Now().Add(8 * time.Hour))

	token, err := codec.Encode(payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, ok := codec.Decode(token)
	if !ok {
		t.Fatal("expected decode to succeed")
	}

	if decoded.UserID != payload.UserID ||
		decoded.UID != payload.UID ||
		decoded.Token != payload.Token ||
		decoded.RefreshToken != payload.RefreshToken ||
		decoded.Username != payload.Username ||
		decoded.Name != payload.Name ||
		decoded.Email != payload.Email ||
		decoded.UserType != payload.UserType ||
		decoded.RequirePasswordChange != payload.RequirePasswordChange ||
		decoded.ExpiresAt != payload.ExpiresAt {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, payload)
	}
	if len(decoded.Roles) != 2 || decoded.Roles[0] != "Operations" || decoded.Roles[1] != "Viewer" {
		t.Fatalf("roles mismatch: %v", decoded.Roles)
	}
}

func TestNewSessionCodecRequiresSecret(t *testing.T) {
	if _, err := NewSessionCodec("", time.Hour); err != ErrSigningSecretMissing {
		t.Fatalf("expected ErrSigningSecretMissing, got %v", err)
	}
	if _, err := NewSessionCodec("   ", time.Hour); err != ErrSigningSecretMissing {
		t.Fatalf("expected ErrSigningSecretMissing for blank secret, got %v", err)
	}
}

func TestDecodeRejectsExpiredSignature(t *testing.T) {
	issued := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	codec, err := NewSessionCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	codec.WithClock(func() time.Time { return issued })

	token, err := codec.Encode(testPayload(issued.Add(8 * time.Hour)))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Advance the clock past the signature TTL.
	codec.WithClock(func() time.Time { return issued.Add(2 * time.Hour) })

	if payload, ok := codec.Decode(token); ok {
		t.Fatalf("expected expired token to decode as absent, got %+v", payload)
	}
}

func TestDecodeRejectsTamperedToken(t *testing.T) {
	codec, err := NewSessionCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	token, err := codec.Encode(testPayload(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	raw := []byte(token)
	for i := 0; i < len(raw); i += 7 {
		mutated := make([]byte, len(raw))
		copy(mutated, raw)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == token {
			continue
		}
		if payload, ok := codec.Decode(string(mutated)); ok && payload.Token == "gateway-bearer-token" {
			// A flipped byte may still parse if it only touched ignored
			// padding, but it must never verify to the original payload
			// with a valid signature.
			t.Fatalf("tampered token at byte %d decoded successfully", i)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec, err := NewSessionCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	for _, token := range []string{"", "   ", "not-a-token", "a.b.c"} {
		if _, ok := codec.Decode(token); ok {
			t.Errorf("expected decode of %q to fail", token)
		}
	}
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	signer, _ := NewSessionCodec("secret-one", time.Hour)
	verifier, _ := NewSessionCodec("secret-two", time.Hour)

	token, err := signer.Encode(testPayload(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, ok := verifier.Decode(token); ok {
		t.Fatal("expected decode under a different secret to fail")
	}
}
