package config

import (
	"os"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/campus-lab/rostersync/pkg/domain/model"
	"github.com/campus-lab/rostersync/pkg/domain/types"
)

// RoleMap holds the CLI flag for the role mapping table file
type RoleMap struct {
	path string
}

// Flags returns CLI flags for role map configuration
func (r *RoleMap) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "role-map",
			Usage:       "TOML file mapping feed role codes to role IDs",
			Category:    "Sync",
			Sources:     cli.EnvVars("ROSTERSYNC_ROLE_MAP"),
			Destination: &r.path,
		},
	}
}

// roleMapFile is the TOML layout of the role mapping table:
//
//	[[role]]
//	code = "01"
//	id = 5
type roleMapFile struct {
	Roles []roleMapping `toml:"role"`
}

type roleMapping struct {
	Code string `toml:"code"`
	ID   int    `toml:"id"`
}

// Validate checks if the role mapping is valid
func (m *roleMapping) Validate() error {
	if !slices.Contains(types.AllRoleCodes(), types.RoleCode(m.Code)) {
		return goerr.New("unknown role code", goerr.V("code", m.Code))
	}
	if m.ID < 0 {
		return goerr.New("role ID must not be negative", goerr.V("code", m.Code), goerr.V("id", m.ID))
	}
	return nil
}

// Configure loads and validates the role mapping table. Without a file the
// default mapping is used. Codes the file does not list map to zero, which
// skips enrolment.
func (r *RoleMap) Configure() (model.RoleMap, error) {
	if r.path == "" {
		return model.DefaultRoleMap(), nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read role map file", goerr.V("path", r.path))
	}

	var file roleMapFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse role map file", goerr.V("path", r.path))
	}

	result := make(model.RoleMap, len(file.Roles))
	for i := range file.Roles {
		m := &file.Roles[i]
		if err := m.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid role mapping", goerr.V("path", r.path))
		}
		code := types.RoleCode(m.Code)
		if _, ok := result[code]; ok {
			return nil, goerr.New("duplicate role code in role map", goerr.V("code", m.Code))
		}
		result[code] = types.RoleID(m.ID)
	}
	return result, nil
}
