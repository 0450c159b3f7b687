// Package e2e provides end-to-end tests for the full descriptor pipeline:
// load → defaults → validate → resolve → instructions → artifacts.
//
// No external systems are required; the pipeline is a single forward pass
// over the input text. Run with:
//
//	go test ./tests/e2e/...
package e2e

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paasport/paasport/internal/core/descriptor"
	"github.com/paasport/paasport/internal/core/plan"
	"github.com/paasport/paasport/internal/shell/render"
)

const demoDescriptor = `
app: demo
domain: example.com
environments:
  prod:
    certificate_arns:
      - arn:aws:acm:1
  dev: {}
services:
  - name: api
    image_location: ghcr.io/demo/api:latest
    repo: https://github.com/demo/api
    environments:
      dev:
        ipfilter: true
        url: dev.example.com
      prod:
        ipfilter: false
        url: example.com
    backing-services: postgres
`

func runPipeline(t *testing.T, input string) ([]plan.ResolvedConfig, []plan.Instruction) {
	t.Helper()

	app, err := descriptor.Load(input)
	require.NoError(t, err)
	app = descriptor.ApplyEnvironmentDefaults(app)
	require.NoError(t, descriptor.Validate(app))

	configs, err := plan.Resolve(app)
	require.NoError(t, err)
	return configs, plan.BuildInstructions(configs)
}

// =============================================================================
// Pipeline Tests
// =============================================================================

func TestPipeline_DemoDescriptor(t *testing.T) {
	configs, instructions := runPipeline(t, demoDescriptor)

	require.Len(t, configs, 2)
	assert.Equal(t, "api", configs[0].Service)
	assert.Equal(t, "dev", configs[0].Environment)
	assert.Equal(t, "api", configs[1].Service)
	assert.Equal(t, "prod", configs[1].Environment)

	texts := make([]string, 0, len(instructions))
	for _, instruction := range instructions {
		texts = append(texts, instruction.Text)
	}
	assert.Equal(t, []string{
		"register certificate arn:aws:acm:1",
		"configure IP filtering for api/dev",
		"set DNS record dev.example.com",
		"set DNS record example.com",
	}, texts)
}

func TestPipeline_Deterministic(t *testing.T) {
	firstConfigs, firstInstructions := runPipeline(t, demoDescriptor)
	secondConfigs, secondInstructions := runPipeline(t, demoDescriptor)

	assert.Equal(t, firstConfigs, secondConfigs)
	assert.Equal(t, firstInstructions, secondInstructions)
}

func TestPipeline_WritesArtifacts(t *testing.T) {
	configs, _ := runPipeline(t, demoDescriptor)

	root := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	renderer := render.NewRenderer(root, false, logger)
	require.NoError(t, renderer.WriteArtifacts(configs))

	for _, path := range []string{
		filepath.Join("copilot", "environments", "dev", "manifest.yml"),
		filepath.Join("copilot", "environments", "prod", "manifest.yml"),
		filepath.Join("copilot", "api", "manifest.yml"),
	} {
		assert.FileExists(t, filepath.Join(root, path))
	}

	data, err := os.ReadFile(filepath.Join(root, "copilot", "api", "manifest.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "url: dev.example.com")
}

func TestPipeline_UndeclaredEnvironmentFailsValidation(t *testing.T) {
	app, err := descriptor.Load(`
app: demo
domain: example.com
environments:
  dev: {}
services:
  - name: api
    image_location: img
    environments:
      staging: {}
`)
	require.NoError(t, err)

	err = descriptor.Validate(descriptor.ApplyEnvironmentDefaults(app))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"api"`)
	assert.Contains(t, err.Error(), `"staging"`)
}

func TestPipeline_WildcardDefaultsFlowThrough(t *testing.T) {
	configs, instructions := runPipeline(t, `
app: demo
domain: example.com
environments:
  "*":
    certificate_arns: [arn:aws:acm:default]
  prod: {}
services:
  - name: api
    image_location: img
    environments:
      prod: {}
`)

	require.Len(t, configs, 1)
	assert.Equal(t, []string{"arn:aws:acm:default"}, configs[0].CertificateARNs)
	require.Len(t, instructions, 1)
	assert.Equal(t, "register certificate arn:aws:acm:default", instructions[0].Text)
}
