// Package plan provides pure functions for turning a validated topology
// descriptor into deployment-ready data.
//
// All functions are pure (no I/O, no side effects). The package produces
// two things:
//
//   - Resolve: one ResolvedConfig per (service, environment) pair a service
//     declares, merging application, environment, service and override
//     settings into a flat record for artifact rendering.
//   - BuildInstructions: the ordered, deduplicated list of manual bootstrap
//     steps an operator must perform before the generated artifacts are
//     usable (certificates, IP filtering, DNS records).
//
// The imperative shell (internal/shell/render) takes these values and
// writes manifests and prints instructions.
//
//	configs, err := plan.Resolve(app)
//	instructions := plan.BuildInstructions(configs)
package plan
