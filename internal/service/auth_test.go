package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"taskchat/internal/config"
	"taskchat/internal/repository"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestRepo(t *testing.T) *repository.Repository {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return repository.NewRepository(db)
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", TokenTTL: 15 * time.Minute}
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(newTestRepo(t), testLogger(), testConfig())
}

func TestRegister(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@x.com", "Alice", "password1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "a@x.com" || user.Name != "Alice" {
		t.Errorf("user = %+v", user)
	}
	if user.PasswordHash == "" || user.PasswordHash == "password1" {
		t.Error("password was not hashed")
	}

	// Duplicate email.
	if _, err := svc.Register(ctx, "a@x.com", "", "password2"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second Register = %v, want ErrEmailTaken", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "a@x.com", "", "correct horse")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("correct password", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "a@x.com", "correct horse")
		if err != nil {
			t.Fatalf("Authenticate: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("user.ID = %s, want %s", user.ID, registered.ID)
		}
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, badPW := svc.Authenticate(ctx, "a@x.com", "wrong")
		_, noUser := svc.Authenticate(ctx, "nobody@x.com", "whatever")
		if !errors.Is(badPW, ErrInvalidCredentials) {
			t.Errorf("wrong password: %v", badPW)
		}
		if !errors.Is(noUser, ErrInvalidCredentials) {
			t.Errorf("unknown user: %v", noUser)
		}
		if badPW.Error() != noUser.Error() {
			t.Errorf("failures differ: %q vs %q", badPW, noUser)
		}
	})
}

func TestPasswordTruncation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	// bcrypt only sees the first 72 bytes; longer inputs are truncated
	// before hashing.
	long := strings.Repeat("a", 80)
	if _, err := svc.Register(ctx, "a@x.com", "", long); err != nil {
		t.Fatalf("Register: %v", err)
	}

	sameFirst72 := strings.Repeat("a", 72) + "different-tail"
	if _, err := svc.Authenticate(ctx, "a@x.com", sameFirst72); err != nil {
		t.Errorf("password sharing first 72 bytes should authenticate, got %v", err)
	}

	if _, err := svc.Authenticate(ctx, "a@x.com", strings.Repeat("a", 71)); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("shorter password authenticated, err = %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newAuthService(t)
	user, err := svc.Register(context.Background(), "a@x.com", "", "password1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := svc.IssueToken(user, 0)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	email, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if email != "a@x.com" {
		t.Errorf("subject = %q, want %q", email, "a@x.com")
	}
}

func TestVerifyTokenFailures(t *testing.T) {
	svc := newAuthService(t)
	user, _ := svc.Register(context.Background(), "a@x.com", "", "password1")

	t.Run("garbage", func(t *testing.T) {
		if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("got %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		token, err := svc.IssueToken(user, time.Nanosecond)
		if err != nil {
			t.Fatalf("IssueToken: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
		if _, err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("got %v, want ErrInvalidToken", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "a@x.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		signed, err := forged.SignedString([]byte("other-secret"))
		if err != nil {
			t.Fatalf("SignedString: %v", err)
		}
		if _, err := svc.VerifyToken(signed); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("got %v, want ErrInvalidToken", err)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("SignedString: %v", err)
		}
		if _, err := svc.VerifyToken(signed); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("got %v, want ErrInvalidToken", err)
		}
	})
}
