package descriptor

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Loader
// =============================================================================

// Load parses a topology descriptor into an Application.
// This is a pure function - no I/O, no side effects.
// Input: raw YAML string
// Output: Application or a LoadError with path and line information
//
// The loader only checks document structure. Cross-reference checks
// (e.g. a service deploying into an undeclared environment) belong to
// Validate.
//
// The document is decoded via yaml.Node rather than straight into structs so
// that duplicate mapping keys at any nesting level are reported as errors
// instead of silently overwriting earlier entries, and so diagnostics can
// carry source line numbers.
func Load(yamlContent string) (*Application, error) {
	if strings.TrimSpace(yamlContent) == "" {
		return nil, NewLoadError("", 0, "descriptor is empty", ErrEmptyInput)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(yamlContent), &doc); err != nil {
		return nil, NewLoadError("", 0, err.Error(), ErrInvalidYAML)
	}

	root := documentRoot(&doc)
	if root == nil {
		return nil, NewLoadError("", 0, "descriptor is empty", ErrEmptyInput)
	}
	if root.Kind != yaml.MappingNode {
		return nil, NewLoadError("", root.Line, "descriptor must be a mapping", ErrWrongShape)
	}

	entries, err := mappingEntries(root, "")
	if err != nil {
		return nil, err
	}

	app := &Application{}
	for _, entry := range entries {
		switch entry.key {
		case "app":
			name, err := scalarString(entry.value, "app")
			if err != nil {
				return nil, err
			}
			app.Name = name

		case "domain":
			domain, err := scalarString(entry.value, "domain")
			if err != nil {
				return nil, err
			}
			app.Domain = domain

		case "environments":
			envs, err := parseEnvironments(entry.value)
			if err != nil {
				return nil, err
			}
			app.Environments = envs

		case "services":
			services, err := parseServices(entry.value)
			if err != nil {
				return nil, err
			}
			app.Services = services
		}
	}

	return app, nil
}

// =============================================================================
// Section Parsers
// =============================================================================

func parseEnvironments(node *yaml.Node) ([]Environment, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, NewLoadError("environments", node.Line, "environments must be a mapping", ErrWrongShape)
	}

	entries, err := mappingEntries(node, "environments")
	if err != nil {
		return nil, err
	}

	envs := make([]Environment, 0, len(entries))
	for _, entry := range entries {
		env, err := parseEnvironment(entry.key, entry.value)
		if err != nil {
			return nil, err
		}
		envs = append(envs, env)
	}
	return envs, nil
}

func parseEnvironment(name string, node *yaml.Node) (Environment, error) {
	env := Environment{Name: name}
	field := "environments." + name

	if isNull(node) {
		return env, nil
	}
	if node.Kind != yaml.MappingNode {
		return Environment{}, NewLoadError(field, node.Line, "environment must be a mapping", ErrWrongShape)
	}

	entries, err := mappingEntries(node, field)
	if err != nil {
		return Environment{}, err
	}

	for _, entry := range entries {
		if entry.key != "certificate_arns" {
			continue
		}
		arns, err := stringSequence(entry.value, field+".certificate_arns")
		if err != nil {
			return Environment{}, err
		}
		env.CertificateARNs = arns
	}
	return env, nil
}

func parseServices(node *yaml.Node) ([]Service, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, NewLoadError("services", node.Line, "services must be a sequence", ErrWrongShape)
	}

	services := make([]Service, 0, len(node.Content))
	seen := make(map[string]bool)
	for i, item := range node.Content {
		svc, err := parseService(i, deref(item))
		if err != nil {
			return nil, err
		}
		if seen[svc.Name] {
			return nil, NewLoadError(
				fmt.Sprintf("services[%d]", i), item.Line,
				fmt.Sprintf("service %q declared more than once", svc.Name),
				ErrDuplicateKey,
			)
		}
		seen[svc.Name] = true
		services = append(services, svc)
	}
	return services, nil
}

func parseService(index int, node *yaml.Node) (Service, error) {
	field := fmt.Sprintf("services[%d]", index)
	if node.Kind != yaml.MappingNode {
		return Service{}, NewLoadError(field, node.Line, "service must be a mapping", ErrWrongShape)
	}

	entries, err := mappingEntries(node, field)
	if err != nil {
		return Service{}, err
	}

	// Resolve the name first so nested diagnostics can reference it.
	svc := Service{}
	for _, entry := range entries {
		if entry.key == "name" {
			name, err := scalarString(entry.value, field+".name")
			if err != nil {
				return Service{}, err
			}
			svc.Name = name
			field = "services." + name
		}
	}

	for _, entry := range entries {
		switch entry.key {
		case "image_location":
			svc.ImageLocation, err = scalarString(entry.value, field+".image_location")
		case "repo":
			svc.Repo, err = scalarString(entry.value, field+".repo")
		case "backing-services":
			svc.BackingServices, err = scalarString(entry.value, field+".backing-services")
		case "environments":
			svc.Environments, err = parseServiceEnvironments(entry.value, field)
		}
		if err != nil {
			return Service{}, err
		}
	}
	return svc, nil
}

func parseServiceEnvironments(node *yaml.Node, serviceField string) ([]ServiceEnvironment, error) {
	field := serviceField + ".environments"
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, NewLoadError(field, node.Line, "environments must be a mapping", ErrWrongShape)
	}

	entries, err := mappingEntries(node, field)
	if err != nil {
		return nil, err
	}

	overrides := make([]ServiceEnvironment, 0, len(entries))
	for _, entry := range entries {
		override, err := parseServiceEnvironment(entry.key, entry.value, field)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}
	return overrides, nil
}

func parseServiceEnvironment(name string, node *yaml.Node, parentField string) (ServiceEnvironment, error) {
	override := ServiceEnvironment{Name: name}
	field := parentField + "." + name

	if isNull(node) {
		return override, nil
	}
	if node.Kind != yaml.MappingNode {
		return ServiceEnvironment{}, NewLoadError(field, node.Line, "environment override must be a mapping", ErrWrongShape)
	}

	entries, err := mappingEntries(node, field)
	if err != nil {
		return ServiceEnvironment{}, err
	}

	for _, entry := range entries {
		switch entry.key {
		case "ipfilter":
			value, err := scalarBool(entry.value, field+".ipfilter")
			if err != nil {
				return ServiceEnvironment{}, err
			}
			override.IPFilter = value
		case "paas":
			value, err := scalarString(entry.value, field+".paas")
			if err != nil {
				return ServiceEnvironment{}, err
			}
			override.PaaS = &value
		case "url":
			value, err := scalarString(entry.value, field+".url")
			if err != nil {
				return ServiceEnvironment{}, err
			}
			override.URL = &value
		}
	}
	return override, nil
}

// =============================================================================
// Node Helpers
// =============================================================================

type mapEntry struct {
	key   string
	value *yaml.Node
}

// mappingEntries returns the key/value pairs of a mapping node in document
// order, rejecting duplicate keys at this nesting level.
func mappingEntries(node *yaml.Node, field string) ([]mapEntry, error) {
	entries := make([]mapEntry, 0, len(node.Content)/2)
	seen := make(map[string]bool)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := deref(node.Content[i+1])

		if keyNode.Kind != yaml.ScalarNode {
			return nil, NewLoadError(field, keyNode.Line, "mapping keys must be scalars", ErrWrongShape)
		}

		key := keyNode.Value
		if seen[key] {
			keyField := key
			if field != "" {
				keyField = field + "." + key
			}
			return nil, NewLoadError(
				keyField, keyNode.Line,
				fmt.Sprintf("key %q declared more than once", key),
				ErrDuplicateKey,
			)
		}
		seen[key] = true

		entries = append(entries, mapEntry{key: key, value: valueNode})
	}
	return entries, nil
}

func scalarString(node *yaml.Node, field string) (string, error) {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return "", NewLoadError(field, node.Line, "value must be a string", ErrWrongShape)
	}
	var value string
	if err := node.Decode(&value); err != nil {
		return "", NewLoadError(field, node.Line, "value must be a string", ErrWrongShape)
	}
	return value, nil
}

func scalarBool(node *yaml.Node, field string) (bool, error) {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!bool" {
		return false, NewLoadError(field, node.Line, "value must be a boolean", ErrWrongShape)
	}
	var value bool
	if err := node.Decode(&value); err != nil {
		return false, NewLoadError(field, node.Line, "value must be a boolean", ErrWrongShape)
	}
	return value, nil
}

func stringSequence(node *yaml.Node, field string) ([]string, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, NewLoadError(field, node.Line, "value must be a sequence of strings", ErrWrongShape)
	}
	values := make([]string, 0, len(node.Content))
	for i, item := range node.Content {
		value, err := scalarString(deref(item), fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := deref(doc.Content[0])
	if isNull(root) {
		return nil
	}
	return root
}

func deref(node *yaml.Node) *yaml.Node {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		return node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}
