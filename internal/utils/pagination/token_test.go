package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)
	id := "9f8b9d6e-6a0f-4c2f-8df0-0a4f2f0d8f11"

	token := EncodeToken(createdAt, id)
	require.NotEmpty(t, token)

	gotTime, gotID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeTokenInvalidBase64(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeTokenMissingSeparator(t *testing.T) {
	_, _, err := DecodeToken("MjAyNS0wMy0xNA==") // "2025-03-14", no separator
	assert.Error(t, err)
}
