package descriptor

import "fmt"

// =============================================================================
// Validator
// =============================================================================

// Validate checks the semantic invariants of a loaded Application and
// returns a ValidationError aggregating every violation found, or nil.
// The model is never modified.
//
// The checks run in order of cheapness and never stop at the first
// violation, so a single run reports everything the operator has to fix:
//
//  1. application name and domain are non-empty
//  2. environment names are unique and non-empty
//  3. service names are unique and non-empty
//  4. every service declares an image location
//  5. every environment a service deploys into is declared at the
//     application level
//
// Structural and type-level problems (duplicate YAML keys, non-boolean
// ipfilter, malformed certificate_arns) are caught earlier by Load; they
// cannot be represented in the model, so Validate does not re-check them.
func Validate(app *Application) error {
	var problems []*FieldError

	fail := func(field, format string, args ...any) {
		problems = append(problems, &FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if app.Name == "" {
		fail("app", "application name is required")
	}
	if app.Domain == "" {
		fail("domain", "application domain is required")
	}

	envNames := make(map[string]bool, len(app.Environments))
	for _, env := range app.Environments {
		if env.Name == "" {
			fail("environments", "environment name must not be empty")
			continue
		}
		if envNames[env.Name] {
			fail("environments."+env.Name, "environment %q declared more than once", env.Name)
			continue
		}
		envNames[env.Name] = true
	}

	svcNames := make(map[string]bool, len(app.Services))
	for i, svc := range app.Services {
		field := "services." + svc.Name
		if svc.Name == "" {
			field = fmt.Sprintf("services[%d]", i)
			fail(field+".name", "service name is required")
		} else if svcNames[svc.Name] {
			fail(field, "service %q declared more than once", svc.Name)
		}
		svcNames[svc.Name] = true

		if svc.ImageLocation == "" {
			fail(field+".image_location", "image location is required")
		}

		for _, override := range svc.Environments {
			if !envNames[override.Name] {
				fail(field+".environments."+override.Name,
					"service %q references undeclared environment %q", svc.Name, override.Name)
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
