package design

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"goa.design/goa/v3/eval"
	"goa.design/goa/v3/expr"
)

func TestDesignEvaluates(t *testing.T) {
	require.NoError(t, eval.RunDSL())

	require.NotNil(t, expr.Root.API)
	assert.Equal(t, "leadcapture", expr.Root.API.Name)

	methods := map[string][]string{
		"health":       {"check"},
		"contact":      {"submit", "list", "get", "update_status", "stats"},
		"consultation": {"book", "list", "get", "update_status", "stats", "lead_stats"},
		"services":     {"submit", "list", "get", "update_status", "stats", "stats_by_service", "types"},
	}
	for name, want := range methods {
		svc := expr.Root.Service(name)
		require.NotNil(t, svc, name)
		for _, m := range want {
			assert.NotNil(t, svc.Method(m), "%s.%s", name, m)
		}
	}

	get := expr.Root.Service("contact").Method("get")
	require.NotNil(t, get.Result)
	assert.Equal(t, "Contact", get.Result.Type.Name())

	for _, name := range []string{"contact", "consultation", "services"} {
		svc := expr.Root.Service(name)
		for _, e := range []string{"bad_request", "validation_failed", "not_found", "rate_limited"} {
			assert.NotNil(t, svc.Error(e), "%s error %s", name, e)
		}
	}
}
