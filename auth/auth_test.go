package auth

import (
	"testing"
	"time"

	"github.com/178inaba/duty-attendance/entity"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("Hash password: %v.", err)
	}
	if err := CheckPassword(hash, "secret"); err != nil {
		t.Fatalf("Password should match: %v.", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("Password should not match.")
	}
}

func TestSessionToken(t *testing.T) {
	ident := entity.Identity{UserID: 7, Username: "alice"}

	token, err := NewSessionToken("secret", time.Hour, ident, time.Now())
	if err != nil {
		t.Fatalf("New session token: %v.", err)
	}

	got, err := ParseSessionToken("secret", token)
	if err != nil {
		t.Fatalf("Parse session token: %v.", err)
	}
	if got != ident {
		t.Fatalf("Identity is %+v, but want %+v.", got, ident)
	}

	if _, err := ParseSessionToken("other", token); err == nil {
		t.Fatal("Token signed with another secret should be rejected.")
	}
}

func TestSessionToken_Expired(t *testing.T) {
	ident := entity.Identity{UserID: 7, Username: "alice"}

	token, err := NewSessionToken("secret", time.Minute, ident, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("New session token: %v.", err)
	}
	if _, err := ParseSessionToken("secret", token); err == nil {
		t.Fatal("Expired token should be rejected.")
	}
}
