package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validApplication() *Application {
	devURL := "dev.example.com"
	prodURL := "example.com"
	return &Application{
		Name:   "demo",
		Domain: "example.com",
		Environments: []Environment{
			{Name: "prod", CertificateARNs: []string{"arn:aws:acm:1"}},
			{Name: "dev"},
		},
		Services: []Service{
			{
				Name:          "api",
				ImageLocation: "ghcr.io/demo/api:latest",
				Repo:          "https://github.com/demo/api",
				Environments: []ServiceEnvironment{
					{Name: "dev", IPFilter: true, URL: &devURL},
					{Name: "prod", URL: &prodURL},
				},
			},
		},
	}
}

// =============================================================================
// Validation Tests
// =============================================================================

func TestValidate_ValidApplication(t *testing.T) {
	assert.NoError(t, Validate(validApplication()))
}

func TestValidate_MissingNameAndDomain(t *testing.T) {
	app := validApplication()
	app.Name = ""
	app.Domain = ""

	err := Validate(app)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Problems, 2)
	assert.Equal(t, "app", validationErr.Problems[0].Field)
	assert.Equal(t, "domain", validationErr.Problems[1].Field)
}

func TestValidate_UndeclaredEnvironmentReference(t *testing.T) {
	app := validApplication()
	app.Services[0].Environments = append(app.Services[0].Environments,
		ServiceEnvironment{Name: "staging"})

	err := Validate(app)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Problems, 1)

	// The error names both the service and the environment.
	problem := validationErr.Problems[0]
	assert.Equal(t, "services.api.environments.staging", problem.Field)
	assert.Contains(t, problem.Message, `"api"`)
	assert.Contains(t, problem.Message, `"staging"`)
}

func TestValidate_DuplicateEnvironmentNames(t *testing.T) {
	app := validApplication()
	app.Environments = append(app.Environments, Environment{Name: "prod"})

	err := Validate(app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `environment "prod" declared more than once`)
}

func TestValidate_DuplicateServiceNames(t *testing.T) {
	app := validApplication()
	app.Services = append(app.Services, Service{
		Name:          "api",
		ImageLocation: "ghcr.io/demo/api:2",
	})

	err := Validate(app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `service "api" declared more than once`)
}

func TestValidate_MissingImageLocation(t *testing.T) {
	app := validApplication()
	app.Services[0].ImageLocation = ""

	err := Validate(app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image location is required")
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	// One pass reports everything: the operator fixes the descriptor in a
	// single edit cycle.
	app := validApplication()
	app.Domain = ""
	app.Services[0].ImageLocation = ""
	app.Services[0].Environments = append(app.Services[0].Environments,
		ServiceEnvironment{Name: "staging"})
	app.Services = append(app.Services, Service{Name: "", ImageLocation: "img"})

	err := Validate(app)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Problems, 4)
	assert.Contains(t, err.Error(), "4 problems")
}

func TestValidate_DoesNotModifyModel(t *testing.T) {
	app := validApplication()
	app.Domain = ""

	_ = Validate(app)

	assert.Equal(t, "demo", app.Name)
	assert.Len(t, app.Services, 1)
	assert.Len(t, app.Environments, 2)
}
