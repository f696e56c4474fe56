package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	startDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 3, 1, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(startDate, createdAt)
	assert.NotEmpty(t, token)

	gotStart, gotCreated, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, startDate, gotStart)
	assert.Equal(t, createdAt, gotCreated)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.ErrorContains(t, err, "base64 decode")

	noSeparator := base64.RawURLEncoding.EncodeToString([]byte("2026-03-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.ErrorContains(t, err, "split")

	badDate := base64.RawURLEncoding.EncodeToString([]byte("notadate|2026-03-15T00:00:00Z"))
	_, _, err = DecodeToken(badDate)
	assert.ErrorContains(t, err, "sort date parse")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 50, ClampLimit(0, 50, 200))
	assert.Equal(t, 50, ClampLimit(-3, 50, 200))
	assert.Equal(t, 10, ClampLimit(10, 50, 200))
	assert.Equal(t, 200, ClampLimit(1000, 50, 200))
}
