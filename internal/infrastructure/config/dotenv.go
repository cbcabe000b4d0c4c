package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DotEnvFile is read from the config file's directory.
const DotEnvFile = ".env"

// EnvLookup returns a lookup over the process environment backed by the
// .env file in dir. Non-empty process variables win over the file. A
// missing file yields os.LookupEnv.
func EnvLookup(dir string) (func(string) (string, bool), error) {
	vals, err := godotenv.Read(filepath.Join(dir, DotEnvFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.LookupEnv, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", DotEnvFile, err)
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := vals[key]
		return v, ok
	}, nil
}
