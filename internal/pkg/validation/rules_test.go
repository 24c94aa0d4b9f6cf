package validation

import "testing"

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("passw0rd"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
	if err := ValidatePassword("short1"); err == nil {
		t.Fatal("too short password accepted")
	}
	if err := ValidatePassword("lettersonly"); err == nil {
		t.Fatal("password without digits accepted")
	}
	if err := ValidatePassword("12345678"); err == nil {
		t.Fatal("password without letters accepted")
	}
}

func TestValidateUsername(t *testing.T) {
	for _, valid := range []string{"jdoe", "j.doe_42", "A2"} {
		if err := ValidateUsername(valid); err != nil {
			t.Fatalf("ValidateUsername(%q): %v", valid, err)
		}
	}
	for _, invalid := range []string{"j", "j doe", "j@doe", ""} {
		if err := ValidateUsername(invalid); err == nil {
			t.Fatalf("ValidateUsername(%q) accepted", invalid)
		}
	}
}

func TestStringValidation(t *testing.T) {
	if !NewStringValidation("hello").WithMinLength(2).WithMaxLength(10).Validate() {
		t.Fatal("valid string rejected")
	}
	if NewStringValidation("").Validate() {
		t.Fatal("empty required string accepted")
	}
	if !NewStringValidation("").WithRequired(false).WithMinLength(5).Validate() {
		t.Fatal("empty optional string rejected")
	}
	if NewStringValidation("toolongvalue").WithMaxLength(5).Validate() {
		t.Fatal("overlong string accepted")
	}
}
