package validation

import "testing"

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{
			name:     "valid username with underscore and digits",
			username: "joao_123",
			wantErr:  false,
		},
		{
			name:     "valid minimal length",
			username: "ana",
			wantErr:  false,
		},
		{
			name:     "valid maximal length",
			username: "abcdefghij0123456789",
			wantErr:  false,
		},
		{
			name:     "too short",
			username: "Jo",
			wantErr:  true,
		},
		{
			name:     "too long",
			username: "abcdefghij0123456789x",
			wantErr:  true,
		},
		{
			name:     "accented character rejected",
			username: "joão123",
			wantErr:  true,
		},
		{
			name:     "uppercase rejected",
			username: "Joao123",
			wantErr:  true,
		},
		{
			name:     "empty",
			username: "",
			wantErr:  true,
		},
		{
			name:     "spaces rejected",
			username: "joao 123",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePIN(t *testing.T) {
	tests := []struct {
		name    string
		pin     string
		wantErr bool
	}{
		{name: "valid four digits", pin: "0412", wantErr: false},
		{name: "too short", pin: "123", wantErr: true},
		{name: "too long", pin: "12345", wantErr: true},
		{name: "letters rejected", pin: "12ab", wantErr: true},
		{name: "empty", pin: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePIN(tt.pin)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePIN(%q) error = %v, wantErr %v", tt.pin, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "tutor@example.com", wantErr: false},
		{name: "missing domain", email: "tutor@", wantErr: true},
		{name: "missing at sign", email: "tutor.example.com", wantErr: true},
		{name: "empty", email: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Maria"); err != nil {
		t.Errorf("ValidateName(Maria) unexpected error: %v", err)
	}
	if err := ValidateName(""); err == nil {
		t.Error("ValidateName(\"\") expected error")
	}
	if err := ValidateName("M"); err == nil {
		t.Error("ValidateName(M) expected error")
	}
}

func TestValidateAge(t *testing.T) {
	for _, age := range []int{1, 7, 99} {
		if err := ValidateAge(age); err != nil {
			t.Errorf("ValidateAge(%d) unexpected error: %v", age, err)
		}
	}
	for _, age := range []int{0, -3, 100} {
		if err := ValidateAge(age); err == nil {
			t.Errorf("ValidateAge(%d) expected error", age)
		}
	}
}
