// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package sqlite is the bundled SQLite coredb.Driver: a file-based,
// single-process embedded database reached through database/sql and
// modernc.org/sqlite (pure Go, no cgo, matching the teacher's own
// preference for a pure-Go stack wherever the ecosystem offers one).
// Grounded on original_source/crates/dbflux_driver_sqlite/src/driver.rs.
package sqlite

import (
	"database/sql"
	"encoding/json"

	_ "modernc.org/sqlite"

	"github.com/dbflux/dbflux/coredb"
	"github.com/dbflux/dbflux/dbkind"
	"github.com/dbflux/dbflux/dberr"
	"github.com/dbflux/dbflux/formdef"
)

// driverName is the database/sql driver name modernc.org/sqlite registers
// itself under.
const driverName = "sqlite"

// config is the DbConfigJSON shape a SQLite ConnectionProfile carries.
type config struct {
	Path string `json:"path"`
}

func parseConfig(raw string) (config, error) {
	var cfg config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return config{}, dberr.Newf(dberr.InvalidProfile, "sqlite: invalid profile config: %v", err)
	}
	if cfg.Path == "" {
		return config{}, dberr.New(dberr.InvalidProfile, "sqlite: profile config missing \"path\"")
	}
	return cfg, nil
}

// Driver is the coredb.Driver for dbkind.SQLite.
type Driver struct{}

// NewDriver returns the SQLite Driver.
func NewDriver() *Driver { return &Driver{} }

func (Driver) Kind() dbkind.Kind { return dbkind.SQLite }

func (Driver) Metadata() dbkind.Metadata {
	return dbkind.Metadata{
		ID:            "sqlite",
		DisplayName:   "SQLite",
		Description:   "File-based embedded database",
		Category:      dbkind.Relational,
		QueryLanguage: dbkind.QueryLanguageSQL,
		Capabilities:  capabilities,
		DefaultPort:   0,
		URIScheme:     "sqlite",
	}
}

func (Driver) FormDefinition() formdef.FormDefinition {
	return formdef.FormDefinition{
		Tabs: []formdef.FormTab{
			{
				Title: "Connection",
				Sections: []formdef.FormSection{
					{
						Title: "Database File",
						Fields: []formdef.FormField{
							{
								Key:         "path",
								Label:       "File Path",
								Kind:        formdef.FieldFilePath,
								Required:    true,
								Placeholder: "/path/to/database.db",
							},
						},
					},
				},
			},
		},
	}
}

// ConnectWithSecrets opens the SQLite file named in the profile. SQLite has
// no server-side authentication, so password and sshSecret are ignored.
func (d Driver) ConnectWithSecrets(profile coredb.ConnectionProfile, password, sshSecret *string) (coredb.Connection, error) {
	cfg, err := parseConfig(profile.DbConfigJSON)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, cfg.Path)
	if err != nil {
		return nil, dberr.Newf(dberr.ConnectionFailed, "sqlite: open %s: %v", cfg.Path, err)
	}
	// SQLite allows only one writer; database/sql's pool would otherwise
	// hand out a second *sql.Conn that serializes badly against the first.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, dberr.Newf(dberr.ConnectionFailed, "sqlite: ping %s: %v", cfg.Path, err)
	}

	return newConnection(db, cfg.Path), nil
}

func (d Driver) TestConnection(profile coredb.ConnectionProfile, password, sshSecret *string) error {
	cfg, err := parseConfig(profile.DbConfigJSON)
	if err != nil {
		return err
	}
	db, err := sql.Open(driverName, cfg.Path)
	if err != nil {
		return dberr.Newf(dberr.ConnectionFailed, "sqlite: open %s: %v", cfg.Path, err)
	}
	defer db.Close()
	if _, err := db.Exec("SELECT 1"); err != nil {
		return dberr.Newf(dberr.ConnectionFailed, "sqlite: %v", err)
	}
	return nil
}

// capabilities narrows dbkind.RelationalBase to what a single SQLite file
// actually offers: no server-side multiple databases (ATTACH is a
// different concept entirely) and no schema namespace beyond "main".
const capabilities = dbkind.RelationalBase &^ (dbkind.MultipleDatabases | dbkind.Schemas | dbkind.SSL | dbkind.Authentication)
