package render

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/paasport/paasport/internal/core/plan"
)

const generatedHeader = "# Generated by paasport. Do not edit.\n"

// =============================================================================
// Manifest Shapes
// =============================================================================

type environmentManifest struct {
	Name            string   `yaml:"name"`
	App             string   `yaml:"app"`
	Domain          string   `yaml:"domain"`
	CertificateARNs []string `yaml:"certificate_arns,omitempty"`
}

type serviceManifest struct {
	Name            string                   `yaml:"name"`
	App             string                   `yaml:"app"`
	ImageLocation   string                   `yaml:"image_location"`
	Repo            string                   `yaml:"repo,omitempty"`
	BackingServices string                   `yaml:"backing-services,omitempty"`
	Environments    []serviceEnvironmentYAML `yaml:"environments"`
}

type serviceEnvironmentYAML struct {
	Name            string   `yaml:"name"`
	IPFilter        bool     `yaml:"ipfilter"`
	PaaS            *string  `yaml:"paas,omitempty"`
	URL             *string  `yaml:"url,omitempty"`
	CertificateARNs []string `yaml:"certificate_arns,omitempty"`
}

// =============================================================================
// Renderer
// =============================================================================

// Renderer writes deployment artifacts under a project root.
type Renderer struct {
	root      string
	overwrite bool
	logger    *slog.Logger
}

// NewRenderer creates a renderer rooted at the given project directory.
func NewRenderer(root string, overwrite bool, logger *slog.Logger) *Renderer {
	return &Renderer{
		root:      root,
		overwrite: overwrite,
		logger:    logger,
	}
}

// WriteArtifacts writes one environment manifest per distinct environment in
// the resolved sequence and one service manifest per service, preserving the
// order they first appear. The resolved sequence is expected to be complete
// and self-consistent; callers must never render a failed run.
func (r *Renderer) WriteArtifacts(configs []plan.ResolvedConfig) error {
	for _, manifest := range environmentManifests(configs) {
		path := filepath.Join("copilot", "environments", manifest.Name, "manifest.yml")
		if err := r.writeManifest(path, manifest); err != nil {
			return err
		}
	}

	for _, manifest := range serviceManifests(configs) {
		path := filepath.Join("copilot", manifest.Name, "manifest.yml")
		if err := r.writeManifest(path, manifest); err != nil {
			return err
		}
	}

	return nil
}

func (r *Renderer) writeManifest(path string, manifest any) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return &RenderError{Path: path, Message: "marshaling manifest", Err: err}
	}

	action, err := MkFile(r.root, path, append([]byte(generatedHeader), data...), r.overwrite)
	if err != nil {
		return err
	}

	r.logger.Info("artifact", "path", path, "action", action)
	return nil
}

// =============================================================================
// Manifest Assembly
// =============================================================================

func environmentManifests(configs []plan.ResolvedConfig) []environmentManifest {
	var manifests []environmentManifest
	seen := make(map[string]bool)

	for _, cfg := range configs {
		if seen[cfg.Environment] {
			continue
		}
		seen[cfg.Environment] = true
		manifests = append(manifests, environmentManifest{
			Name:            cfg.Environment,
			App:             cfg.App,
			Domain:          cfg.Domain,
			CertificateARNs: cfg.CertificateARNs,
		})
	}
	return manifests
}

func serviceManifests(configs []plan.ResolvedConfig) []serviceManifest {
	var manifests []serviceManifest
	index := make(map[string]int)

	for _, cfg := range configs {
		i, ok := index[cfg.Service]
		if !ok {
			i = len(manifests)
			index[cfg.Service] = i
			manifests = append(manifests, serviceManifest{
				Name:            cfg.Service,
				App:             cfg.App,
				ImageLocation:   cfg.ImageLocation,
				Repo:            cfg.Repo,
				BackingServices: cfg.BackingServices,
			})
		}
		manifests[i].Environments = append(manifests[i].Environments, serviceEnvironmentYAML{
			Name:            cfg.Environment,
			IPFilter:        cfg.IPFilter,
			PaaS:            cfg.PaaS,
			URL:             cfg.URL,
			CertificateARNs: cfg.CertificateARNs,
		})
	}
	return manifests
}

// =============================================================================
// Instruction Output
// =============================================================================

// WriteInstructions prints the numbered bootstrap instruction list.
func WriteInstructions(w io.Writer, instructions []plan.Instruction) error {
	if len(instructions) == 0 {
		_, err := fmt.Fprintln(w, "No manual bootstrap steps required.")
		return err
	}

	if _, err := fmt.Fprintln(w, "Manual bootstrap steps, in order:"); err != nil {
		return err
	}
	for i, instruction := range instructions {
		if _, err := fmt.Fprintf(w, "%2d. %s\n", i+1, instruction.Text); err != nil {
			return err
		}
	}
	return nil
}
