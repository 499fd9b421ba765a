package scancode

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/config"
)

func TestConfigurationContainsOnlyResultAffectingOptions(t *testing.T) {
	engine := newTestEngine(t)

	configuration := engine.Configuration()

	assert.Equal(t, "--copyright --license --info --strip-root --timeout 300 --json-pp", configuration)
	assert.NotContains(t, configuration, "--processes")
	assert.NotContains(t, configuration, "--verbose")
}

func TestConfigurationAppendsDebugOptionsWhenDebugActive(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	debugLogger := hclog.New(&hclog.LoggerOptions{Level: hclog.Debug})
	engine := New(cfg, debugLogger)

	assert.Equal(t, "--copyright --license --info --strip-root --timeout 300 --json-pp --license-diag", engine.Configuration())
}

func TestConfigurationIsStableAcrossCalls(t *testing.T) {
	engine := newTestEngine(t)

	first := engine.Configuration()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, engine.Configuration())
	}
}

func TestCommandLineOptionsIncludeNonConfigOptions(t *testing.T) {
	engine := newTestEngine(t)

	options := engine.CommandLineOptions()

	assert.Contains(t, options, "--processes")
	assert.Contains(t, options, OutputFormatOption)
	assert.NotContains(t, options, "--verbose")
}
