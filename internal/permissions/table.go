package permissions

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/permproof/permproof/pkg/errors"
)

// Default returns the built-in required-permission table covering the
// toolkit's deploy surface. Callers needing a different table supply their
// own YAML file via LoadTable.
func Default() []RequiredPermission {
	return []RequiredPermission{
		{
			Actions: []string{
				"s3:CreateBucket",
				"s3:PutObject",
				"s3:GetObject",
				"s3:ListBucket",
			},
			Resource: "*",
		},
		{
			Actions: []string{
				"logs:DescribeLogGroups",
				"logs:FilterLogEvents",
			},
			Resource: "*",
		},
		{
			Actions: []string{
				"lambda:CreateFunction",
				"lambda:UpdateFunctionCode",
				"lambda:InvokeFunction",
			},
			Resource: "*",
		},
		{
			Actions: []string{
				"iam:PassRole",
				"iam:GetRole",
			},
			Resource: "*",
		},
		{
			Actions: []string{
				"servicequotas:GetServiceQuota",
			},
			Resource: "*",
		},
	}
}

// tableFile is the YAML document shape for an external permission table
type tableFile struct {
	Permissions []RequiredPermission `yaml:"permissions" validate:"required,min=1,dive"`
}

// LoadTable reads a required-permission table from a YAML file
func LoadTable(path string) ([]RequiredPermission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(
			errors.ErrConfigLoadFailed,
			err,
			"failed to read permission table",
		).WithField("path", path)
	}

	var doc tableFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(
			errors.ErrConfigInvalid,
			err,
			"failed to parse permission table YAML",
		).WithField("path", path)
	}

	if err := validator.New().Struct(&doc); err != nil {
		return nil, errors.Wrap(
			errors.ErrValidationFailed,
			err,
			"permission table failed validation",
		).WithField("path", path)
	}

	return doc.Permissions, nil
}
