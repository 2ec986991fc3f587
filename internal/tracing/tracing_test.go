package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracerWithoutEndpointInstallsNoopExportingProvider(t *testing.T) {
	shutdown, err := InitTracer(DefaultConfig("munin-test"))
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestProductionConfigLowersSampleRatio(t *testing.T) {
	assert.Less(t, ProductionConfig("munin-test").SampleRatio, DefaultConfig("munin-test").SampleRatio)
}
