package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdentityDerivesStableID(t *testing.T) {
	first, err := NewIdentity("lanscope-demo-device", "", "secret")
	require.NoError(t, err)
	assert.Equal(t, "lanscope-demo-device", first.Name)
	assert.Regexp(t, `^[0-9a-f]{2}(:[0-9a-f]{2}){5}$`, first.ID)

	// Same inputs, same ID across restarts.
	second, err := NewIdentity("lanscope-demo-device", "", "secret")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Different secret, different ID.
	other, err := NewIdentity("lanscope-demo-device", "", "another")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestNewIdentityExplicitID(t *testing.T) {
	ident, err := NewIdentity("printer", "01:23:45:67:89:ab", "unused")
	require.NoError(t, err)
	assert.Equal(t, "01:23:45:67:89:ab", ident.ID)

	_, err = NewIdentity("printer", "not-an-id", "unused")
	assert.Error(t, err)
}

func TestNewIdentitySanitizesName(t *testing.T) {
	ident, err := NewIdentity("Living Room Printer v2.1", "", "secret")
	require.NoError(t, err)
	assert.Equal(t, "living-room-printer-v2-1", ident.Name)

	// A name that reduces to nothing is rejected.
	_, err = NewIdentity("!!!", "", "secret")
	assert.Error(t, err)
}
