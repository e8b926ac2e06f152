package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/mod/semver"

	"github.com/localnerve/jam-build-breezemeta/internal/types"
)

// MetadataVersionHeader carries the metadata version a client was built against.
const MetadataVersionHeader = "X-Metadata-Version"

// VersionMiddleware compares the X-Metadata-Version header against the
// served version and stores the requested version in context. Requests
// without the header always pass.
func VersionMiddleware(served string) fiber.Handler {
	servedMajor := semver.Major(canonical(served))

	return func(c *fiber.Ctx) error {
		version := c.Get(MetadataVersionHeader)
		if version == "" {
			c.Locals("metadataVersion", served)
			return c.Next()
		}

		requested := canonical(version)
		if !semver.IsValid(requested) {
			return &types.CustomError{
				Code:    fiber.StatusBadRequest,
				Message: fmt.Sprintf("Invalid %s %q", MetadataVersionHeader, version),
				Type:    types.ErrorTypeVersion,
			}
		}
		if semver.Major(requested) != servedMajor {
			return &types.CustomError{
				Code:    fiber.StatusConflict,
				Message: fmt.Sprintf("E_VERSION - Client metadata %s is incompatible with %s. Refresh and retry.", version, served),
				Type:    types.ErrorTypeVersion,
			}
		}

		c.Locals("metadataVersion", version)
		return c.Next()
	}
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
