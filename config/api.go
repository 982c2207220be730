package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public read-only paths (GraphQL queries and metrics carry no mutations)
	return []string{"/graphql", "/metrics", "/health"}
}
