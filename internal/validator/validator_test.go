package validator

import "testing"

func TestCheckKeepsFirstFailure(t *testing.T) {
	v := New()
	v.Check(false, "title", "must be provided")
	v.Check(false, "title", "must be shorter")

	if !v.HasErrors() {
		t.Fatal("expected errors")
	}
	if got := v.Errors["title"]; got != "must be provided" {
		t.Errorf("Errors[title] = %q, want first message kept", got)
	}
}

func TestCheckEmail(t *testing.T) {
	valid := []string{"a@x.com", "user.name+tag@example.co.uk"}
	invalid := []string{"", "not-an-email", "@x.com", "a@"}

	for _, email := range valid {
		v := New()
		v.CheckEmail(email)
		if v.HasErrors() {
			t.Errorf("CheckEmail(%q) flagged a valid address: %v", email, v.Errors)
		}
	}
	for _, email := range invalid {
		v := New()
		v.CheckEmail(email)
		if !v.HasErrors() {
			t.Errorf("CheckEmail(%q) accepted an invalid address", email)
		}
	}
}

func TestCheckPassword(t *testing.T) {
	v := New()
	v.CheckPassword("short")
	if !v.HasErrors() {
		t.Error("expected short password to fail")
	}

	v = New()
	v.CheckPassword("long enough password")
	if v.HasErrors() {
		t.Errorf("unexpected errors: %v", v.Errors)
	}
}
