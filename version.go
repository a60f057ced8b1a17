package esdart

import (
	"fmt"

	semver "github.com/Masterminds/semver/v3"
)

var version = semver.MustParse("0.3.0")

func Version() *semver.Version {
	return version
}

// Returns an error if this build doesn't satisfy a version constraint such
// as ">= 0.3, < 1". Build scripts use this to pin the tool they expect.
func CheckVersion(constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	if ok, errs := c.Validate(version); !ok {
		if len(errs) > 0 {
			return fmt.Errorf("esdart %s does not satisfy %q: %w", version, constraint, errs[0])
		}
		return fmt.Errorf("esdart %s does not satisfy %q", version, constraint)
	}
	return nil
}
