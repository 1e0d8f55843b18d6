package security

import (
	"errors"
	"testing"
)

func TestMinLengthRule(t *testing.T) {
	rule := MinLengthRule(10)

	if err := rule.Validate("short1"); err == nil {
		t.Fatal("expected short password to be rejected")
	}
	if err := rule.Validate("longenough123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMixedClassRule(t *testing.T) {
	rule := MixedClassRule()

	if err := rule.Validate("onlyletters"); err == nil {
		t.Fatal("expected letters-only password to be rejected")
	}
	if err := rule.Validate("1234567890"); err == nil {
		t.Fatal("expected digits-only password to be rejected")
	}
	if err := rule.Validate("letters123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDefaultValidatorRejectsCommonPassword(t *testing.T) {
	validator := DefaultPasswordValidator()

	err := validator.Validate("password123")
	if err == nil {
		t.Fatal("expected common password to be rejected")
	}

	var verr *PasswordValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected PasswordValidationError, got %T", err)
	}
}

func TestDefaultValidatorAcceptsStrongPassword(t *testing.T) {
	validator := DefaultPasswordValidator()

	if err := validator.Validate("k9#Wq2zr!Lpx7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
