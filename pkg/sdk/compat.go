package sdk

import (
	"context"
	"fmt"
	"strings"
)

// SupportedSchemaMajor is the schema major version this package decodes.
const SupportedSchemaMajor = "1"

// Compatible reads the schema resource and fails with ErrIncompatible when
// the server's major version differs from SupportedSchemaMajor.
func (c *Client) Compatible(ctx context.Context) error {
	info, err := c.GetSchema(ctx)
	if err != nil {
		return fmt.Errorf("check compatibility: %w", err)
	}
	if got := majorVersion(info.SchemaVersion); got != SupportedSchemaMajor {
		return fmt.Errorf("%w: server schema %s, want major %s",
			ErrIncompatible, info.SchemaVersion, SupportedSchemaMajor)
	}
	return nil
}

func majorVersion(v string) string {
	major, _, _ := strings.Cut(strings.TrimPrefix(v, "v"), ".")
	return major
}
