package plan

import (
	"fmt"

	"github.com/paasport/paasport/internal/core/descriptor"
)

// =============================================================================
// Resolved Configuration
// =============================================================================

// ResolvedConfig is the fully merged configuration for one
// (service, environment) pair, the unit handed to artifact rendering.
//
// The merge is strictly additive: each layer owns a disjoint set of fields
// (application → App/Domain, environment → Environment/CertificateARNs,
// service → Service/ImageLocation/Repo/BackingServices, override →
// IPFilter/PaaS/URL), so no layer can shadow another.
type ResolvedConfig struct {
	// Application layer
	App    string
	Domain string

	// Environment layer
	Environment     string
	CertificateARNs []string

	// Service layer
	Service         string
	ImageLocation   string
	Repo            string
	BackingServices string

	// Override layer
	IPFilter bool
	PaaS     *string
	URL      *string
}

// ResolutionError reports an internal-consistency failure during resolution.
// It signals a defect in validation rather than bad input: a validated
// descriptor can never trigger it.
type ResolutionError struct {
	Service     string
	Environment string
	Message     string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving %s/%s: %s", e.Service, e.Environment, e.Message)
}

// =============================================================================
// Resolver
// =============================================================================

// Resolve merges the application, environment, service and override layers
// into a flat list of ResolvedConfig records, one per (service, environment)
// pair each service declares, in source order (services first, then each
// service's environments).
//
// Services are never expanded into environments they did not opt into.
// Resolve is deterministic: the same descriptor always yields the identical
// sequence.
func Resolve(app *descriptor.Application) ([]ResolvedConfig, error) {
	var configs []ResolvedConfig

	for _, svc := range app.Services {
		for _, override := range svc.Environments {
			env, ok := app.Environment(override.Name)
			if !ok {
				// Unreachable for a validated descriptor.
				return nil, &ResolutionError{
					Service:     svc.Name,
					Environment: override.Name,
					Message:     "environment not declared at application level",
				}
			}

			configs = append(configs, ResolvedConfig{
				App:             app.Name,
				Domain:          app.Domain,
				Environment:     env.Name,
				CertificateARNs: append([]string(nil), env.CertificateARNs...),
				Service:         svc.Name,
				ImageLocation:   svc.ImageLocation,
				Repo:            svc.Repo,
				BackingServices: svc.BackingServices,
				IPFilter:        override.IPFilter,
				PaaS:            override.PaaS,
				URL:             override.URL,
			})
		}
	}

	return configs, nil
}
