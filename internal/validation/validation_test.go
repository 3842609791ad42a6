package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "SecurePass12!@", false},
		{"Exactly Min Length", "Abcdefghij1!", false},
		{"Too Short", "Small1!", true},
		{"Too Long", "A" + strings.Repeat("b", 126) + "1!", true},
		{"No Upper", "securepass12!", true},
		{"No Lower", "SECUREPASS12!", true},
		{"No Digit", "SecurePass!!", true},
		{"No Special", "SecurePass123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateHandle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		handle  string
		wantErr bool
	}{
		{"Valid", "music_fan123", false},
		{"Too Short", "mf", true},
		{"Too Long", strings.Repeat("a", 31), true},
		{"Illegal Chars", "fan@123", true},
		{"Starts Dash", "-fan", true},
		{"Ends Underscore", "fan_", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHandle(tt.handle)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNickname(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateNickname("ロックの虫"))
	assert.Error(t, ValidateNickname(""))
	assert.Error(t, ValidateNickname(strings.Repeat("あ", 51)))
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "test@example.com", false},
		{"Invalid Format", "not-an-email", true},
		{"Missing Domain", "user@", true},
		{"Too Long", strings.Repeat("a", 250) + "@e.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePostContent(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidatePostContent("short and sweet"))
	// multibyte characters are counted as single runes
	assert.NoError(t, ValidatePostContent(strings.Repeat("音", 600)))
	assert.Error(t, ValidatePostContent(""))
	assert.Error(t, ValidatePostContent(strings.Repeat("音", 601)))
}
