package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{
		"a@b.vn", "hr.manager@coffeelux.com.vn", "x+tag@example.org",
	} {
		require.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{
		"", "plain", "@no-local.vn", "no-domain@", "two@@ats.vn",
		"spaces in@mail.vn", "no-tld@host",
	} {
		require.False(t, ValidEmail(bad), bad)
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		wantErr  error
	}{
		{"Abc123!@", nil},
		{"longer-passphrase-9!", nil},
		{"Ab1!", ErrPasswordTooShort},
		{strings.Repeat("Aa1!", 13), ErrPasswordTooLong},
		{"12345678!", ErrPasswordNoLetter},
		{"Password!", ErrPasswordNoDigit},
		{"Password1", ErrPasswordNoSpecial},
	}
	for _, tt := range tests {
		err := ValidatePasswordStrength(tt.password)
		if tt.wantErr == nil {
			require.NoError(t, err, tt.password)
		} else {
			require.ErrorIs(t, err, tt.wantErr, tt.password)
		}
	}
}

func TestMaskEmail(t *testing.T) {
	require.Equal(t, "t***@shop.vn", MaskEmail("taylor@shop.vn"))
	require.Equal(t, "a***@b.vn", MaskEmail("a@b.vn"))
	require.Equal(t, "not-an-email", MaskEmail("not-an-email"))
	require.Equal(t, "@odd.vn", MaskEmail("@odd.vn"))
}
