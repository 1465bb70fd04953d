package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferralCode(t *testing.T) {
	tests := []struct {
		username string
		prefix   string
	}{
		{"alice", "ALI"},
		{"bo", "BOX"},
		{"", "XXX"},
		{"  dan smith", "DAN"},
		{"élan", "ÉLA"},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			code, err := GenerateReferralCode(tt.username)
			require.NoError(t, err)
			assert.Regexp(t, "^"+regexp.QuoteMeta(tt.prefix)+"[A-Z0-9]{4}$", code)
		})
	}
}

func TestGenerateOTP(t *testing.T) {
	otp, err := GenerateOTP()
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9]{6}$`, otp)
}

func TestGenerateProductID(t *testing.T) {
	id := GenerateProductID()
	assert.Regexp(t, `^PROD-[0-9A-F]{8}$`, id)
	assert.NotEqual(t, id, GenerateProductID())
}
