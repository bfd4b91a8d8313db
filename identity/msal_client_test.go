package identity

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/public"
	"github.com/evergreen-ci/cirrus"
	"github.com/evergreen-ci/utility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMSALClientOptions(t *testing.T) {
	t.Run("NewMSALClientOptions", func(t *testing.T) {
		opts := NewMSALClientOptions()
		require.NotZero(t, opts)
		assert.Zero(t, *opts)
	})
	t.Run("Setters", func(t *testing.T) {
		var buf bytes.Buffer
		fc, err := NewFileCache("cache.json")
		require.NoError(t, err)
		opts := NewMSALClientOptions().
			SetClientID("client").
			SetTenantID("tenant").
			SetAuthorityHost("https://login.example.com").
			SetCache(fc).
			SetUseDeviceCode(true).
			SetDeviceCodeOutput(&buf)
		assert.Equal(t, "client", utility.FromStringPtr(opts.ClientID))
		assert.Equal(t, "tenant", utility.FromStringPtr(opts.TenantID))
		assert.Equal(t, "https://login.example.com", utility.FromStringPtr(opts.AuthorityHost))
		assert.Equal(t, fc, opts.Cache)
		assert.True(t, opts.UseDeviceCode)
		assert.Equal(t, &buf, opts.DeviceCodeOutput)
	})
	t.Run("Validate", func(t *testing.T) {
		t.Run("FailsWithEmpty", func(t *testing.T) {
			assert.Error(t, NewMSALClientOptions().Validate())
		})
		t.Run("FailsWithoutClientID", func(t *testing.T) {
			assert.Error(t, NewMSALClientOptions().SetTenantID("tenant").Validate())
		})
		t.Run("FailsWithoutTenantID", func(t *testing.T) {
			assert.Error(t, NewMSALClientOptions().SetClientID("client").Validate())
		})
		t.Run("FailsWithNonHTTPSAuthorityHost", func(t *testing.T) {
			opts := NewMSALClientOptions().
				SetClientID("client").
				SetTenantID("tenant").
				SetAuthorityHost("http://login.example.com")
			assert.Error(t, opts.Validate())
		})
		t.Run("SetsDefaults", func(t *testing.T) {
			opts := NewMSALClientOptions().SetClientID("client").SetTenantID("tenant")
			require.NoError(t, opts.Validate())
			assert.Equal(t, DefaultAuthorityHost, utility.FromStringPtr(opts.AuthorityHost))
			assert.NotZero(t, opts.DeviceCodeOutput)
		})
	})
	t.Run("Authority", func(t *testing.T) {
		opts := NewMSALClientOptions().
			SetTenantID("tenant").
			SetAuthorityHost("https://login.microsoftonline.com/")
		assert.Equal(t, "https://login.microsoftonline.com/tenant", opts.Authority())
	})
}

func TestMSALClient(t *testing.T) {
	assert.Implements(t, (*cirrus.IdentityClient)(nil), &MSALClient{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("NewMSALClientFailsWithInvalidOptions", func(t *testing.T) {
		c, err := NewMSALClient(*NewMSALClientOptions())
		assert.Error(t, err)
		assert.Zero(t, c)
	})
	t.Run("AccountsIsEmptyWithNewCache", func(t *testing.T) {
		fc, err := NewFileCache(filepath.Join(t.TempDir(), "cache.json"))
		require.NoError(t, err)
		c, err := NewMSALClient(*NewMSALClientOptions().
			SetClientID("00000000-0000-0000-0000-000000000000").
			SetTenantID("common").
			SetCache(fc))
		require.NoError(t, err)

		accts, err := c.Accounts(ctx)
		require.NoError(t, err)
		assert.Empty(t, accts)
	})
	t.Run("AcquireTokenSilentFailsForUnknownAccount", func(t *testing.T) {
		c, err := NewMSALClient(*NewMSALClientOptions().
			SetClientID("00000000-0000-0000-0000-000000000000").
			SetTenantID("common"))
		require.NoError(t, err)

		res, err := c.AcquireTokenSilent(ctx, []string{"User.Read"}, cirrus.Account{ID: "unknown"})
		assert.Error(t, err)
		assert.Zero(t, res)
	})
}

func TestExportAuthResult(t *testing.T) {
	expires := time.Now().Add(time.Hour)
	res := exportAuthResult(public.AuthResult{
		AccessToken: "token",
		ExpiresOn:   expires,
		Account: public.Account{
			HomeAccountID:     "uid.utid",
			PreferredUsername: "user@example.com",
			Environment:       "login.microsoftonline.com",
		},
	})
	require.NotZero(t, res)
	assert.Equal(t, "token", res.AccessToken)
	assert.Equal(t, expires, res.ExpiresOn)
	assert.Equal(t, cirrus.Account{
		ID:          "uid.utid",
		Username:    "user@example.com",
		Environment: "login.microsoftonline.com",
	}, res.Account)
}
