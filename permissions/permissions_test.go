package permissions_test

import (
	"net/http"
	"sparkle/config"
	"sparkle/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedTable(t *testing.T) {
	table := permissions.Get()
	require.NotNil(t, table)

	webhook := table.FindPermissions("/v1/webhooks/stripe", http.MethodPost)
	assert.True(t, webhook.Skip)

	refunds := table.FindPermissions("/v1/payments/refunds", http.MethodPost)
	assert.True(t, refunds.Allows("admin"))
	assert.False(t, refunds.Allows("customer"))

	intents := table.FindPermissions("/v1/payments/intents", http.MethodPost)
	assert.True(t, intents.Allows("customer"))

	missing := table.FindPermissions("/v1/unknown", http.MethodGet)
	assert.Empty(t, missing.Path)
}

func TestParse_Invalid(t *testing.T) {
	_, err := permissions.Parse([]byte("{"))
	assert.Error(t, err)
}

func TestPolicy_IsAdmin(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.AdminEmails = []string{" Owner@Sparkle.test ", "", "ops@sparkle.test"}

	policy := permissions.NewPolicy(cfg)

	assert.True(t, policy.IsAdmin("owner@sparkle.test"))
	assert.True(t, policy.IsAdmin("OPS@sparkle.test"))
	assert.False(t, policy.IsAdmin("customer@sparkle.test"))
	assert.False(t, policy.IsAdmin(""))
}
