package descriptor

// =============================================================================
// Descriptor Model
// =============================================================================

// Application is the root of a parsed topology descriptor.
// It owns all environments and services declared in the document.
type Application struct {
	// Name identifies the application (copilot app name).
	Name string

	// Domain is the base DNS domain for the application.
	Domain string

	// Environments are the deployment targets, in source order.
	// May contain a wildcard entry named "*" until defaults are applied.
	Environments []Environment

	// Services are the deployable units, in source order.
	Services []Service
}

// Environment is a named deployment target shared across services.
type Environment struct {
	Name string

	// CertificateARNs are the TLS certificates attached to this environment.
	// A nil slice means "not configured", distinct from an explicit empty list.
	CertificateARNs []string
}

// Service is one deployable unit within the application.
type Service struct {
	Name          string
	ImageLocation string
	Repo          string

	// BackingServices is a free-form description of data stores and other
	// dependencies the service needs (e.g. "postgres, redis").
	BackingServices string

	// Environments are the per-environment overrides, in source order.
	// A service is only deployed into environments it declares here.
	Environments []ServiceEnvironment
}

// ServiceEnvironment is a per-service, per-environment override layered on
// top of the shared environment settings.
type ServiceEnvironment struct {
	// Name references an Environment declared at the application level.
	Name string

	// IPFilter enables IP filtering for this deployment. Defaults to false.
	IPFilter bool

	// PaaS is the prior platform's location for this deployment
	// (e.g. "dit-staging/my-app"). Present only during migration.
	PaaS *string

	// URL is the public URL for this deployment.
	URL *string
}

// =============================================================================
// Lookup Helpers
// =============================================================================

// Environment returns the environment with the given name, if declared.
func (a *Application) Environment(name string) (Environment, bool) {
	for _, env := range a.Environments {
		if env.Name == name {
			return env, true
		}
	}
	return Environment{}, false
}

// Service returns the service with the given name, if declared.
func (a *Application) Service(name string) (Service, bool) {
	for _, svc := range a.Services {
		if svc.Name == name {
			return svc, true
		}
	}
	return Service{}, false
}
