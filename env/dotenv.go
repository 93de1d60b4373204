package env

import (
	"fmt"

	"github.com/joho/godotenv"
)

// Dotenv reads one or more dotenv files into a Map. Files are read in
// order and merged with first-definition-wins precedence, matching
// godotenv's load semantics. A file that cannot be read or parsed fails
// the whole read.
func Dotenv(paths ...string) (Map, error) {
	merged := make(Map)
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("env: read %s: %w", path, err)
		}
		for k, v := range values {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
	}
	return merged, nil
}
