package descriptor

// =============================================================================
// Wildcard Environment Defaults
// =============================================================================

// DefaultsEnvironment is the name of the wildcard environment entry whose
// settings apply to every named environment.
const DefaultsEnvironment = "*"

// ApplyEnvironmentDefaults merges the wildcard "*" environment entry into
// every named environment and removes it from the environment set.
// A named environment's own settings win over the wildcard. Returns a new
// Application; the input is not mutated.
//
// Must run after Load and before Validate: validation and resolution only
// ever see named environments.
//
// Example:
//
//	// environments: {"*": {certificate_arns: [arn:a]}, prod: {}, dev: {certificate_arns: [arn:b]}}
//	app = ApplyEnvironmentDefaults(app)
//	// prod inherits [arn:a], dev keeps [arn:b], "*" is gone
func ApplyEnvironmentDefaults(app *Application) *Application {
	enriched := *app

	var defaults *Environment
	for i := range app.Environments {
		if app.Environments[i].Name == DefaultsEnvironment {
			defaults = &app.Environments[i]
			break
		}
	}
	if defaults == nil {
		return &enriched
	}

	envs := make([]Environment, 0, len(app.Environments)-1)
	for _, env := range app.Environments {
		if env.Name == DefaultsEnvironment {
			continue
		}
		if env.CertificateARNs == nil && defaults.CertificateARNs != nil {
			env.CertificateARNs = append([]string(nil), defaults.CertificateARNs...)
		}
		envs = append(envs, env)
	}

	enriched.Environments = envs
	return &enriched
}
