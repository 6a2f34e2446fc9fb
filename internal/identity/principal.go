// Package identity normalizes raw caller ARNs into principals that policy
// simulation can target. Policy simulation accepts a user or role, not a
// transient assumed-role session, so session ARNs are mapped back to the
// role they were assumed from.
package identity

import (
	"fmt"
	"strings"

	"github.com/permproof/permproof/pkg/errors"
)

// NormalizePrincipal parses a raw principal ARN and returns the canonical
// principal for simulation:
//
//	arn:aws:iam::<account>:user/<name>                      -> unchanged
//	arn:aws:sts::<account>:assumed-role/<role>/<session>    -> arn:aws:iam::<account>:role/<role>
//
// Any other shape fails with ErrUnsupportedIdentity; an assumed-role ARN
// missing its session segment fails with ErrUnsupportedAssumedRole so the
// caller can give a precise diagnostic. Parsing splits on fixed delimiters
// with bounds checks; every rejection branch is explicit.
func NormalizePrincipal(raw string) (string, error) {
	// arn:aws:<service>:<region>:<account>:<resource>
	parts := strings.SplitN(raw, ":", 6)
	if len(parts) != 6 || parts[0] != "arn" || parts[1] != "aws" {
		return "", errors.New(
			errors.ErrUnsupportedIdentity,
			"identity is not a valid AWS principal ARN",
		).WithField("arn", raw)
	}

	service := parts[2]
	account := parts[4]
	resource := parts[5]

	resourceType, rest, hasRest := strings.Cut(resource, "/")

	switch {
	case service == "iam" && resourceType == "user":
		if !hasRest || rest == "" {
			return "", errors.New(
				errors.ErrUnsupportedIdentity,
				"IAM user ARN is missing a user name",
			).WithField("arn", raw)
		}
		return raw, nil

	case service == "sts" && resourceType == "assumed-role":
		if !hasRest {
			return "", errors.New(
				errors.ErrUnsupportedAssumedRole,
				"assumed-role ARN is missing the role segment",
			).WithField("arn", raw)
		}

		roleName, session, hasSession := strings.Cut(rest, "/")
		if roleName == "" || !hasSession || session == "" {
			return "", errors.New(
				errors.ErrUnsupportedAssumedRole,
				"assumed-role ARN is missing the session segment",
			).WithField("arn", raw)
		}

		return fmt.Sprintf("arn:aws:iam::%s:role/%s", account, roleName), nil

	default:
		return "", errors.New(
			errors.ErrUnsupportedIdentity,
			fmt.Sprintf("unsupported principal type %s/%s", service, resourceType),
		).WithField("arn", raw)
	}
}
