package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize("en"))

	assert.Equal(t, []string{"en", "si"}, GetSupportedLanguages())
	assert.True(t, IsSupported("si"))
	assert.False(t, IsSupported("zh_TW"))

	assert.Equal(t, "Product not found", T("en", KeyProductNotFound))
	assert.NotEqual(t, T("en", KeyProductNotFound), T("si", KeyProductNotFound))
	assert.Equal(t, "Invalid input", T("en", KeyValidationInvalid, "input"))

	// unknown language falls back to default, unknown key echoes the key
	assert.Equal(t, "Product not found", T("fr", KeyProductNotFound))
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))
}

func TestEveryKeyTranslatedInEveryLocale(t *testing.T) {
	require.NoError(t, Initialize("en"))

	keys := []string{
		KeyAuthRequired, KeyAuthInvalidToken, KeyAuthInvalidCredentials, KeyAuthUserExists,
		KeyAuthLoginSuccess, KeyAuthRegisterSuccess, KeyUserNotFound, KeyReferralApplied,
		KeyProductCreated, KeyProductNotFound, KeyStoreProductAdded, KeyStoreProductRemoved,
		KeyStoreProductExists, KeyStoreProductMissing, KeyStoreCreated, KeyStoreCodeTaken,
		KeyOrderCreated, KeyOrderBillingFailed, KeyAdminAccessDenied, KeyValidationInvalid,
		KeyInternalError, KeyRateLimited,
	}
	for _, lang := range GetSupportedLanguages() {
		for _, key := range keys {
			_, ok := instance.lookup(lang, key)
			assert.True(t, ok, "%s missing %s", lang, key)
		}
	}
}
