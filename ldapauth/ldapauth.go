// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

// Package ldapauth authenticates a username/password pair against an LDAP
// directory, for drivers whose AUTHENTICATION capability is backed by LDAP
// bind rather than a native database credential store. Grounded on the
// teacher's direct dependency on github.com/go-ldap/ldap/v3.
package ldapauth

import (
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/go-ldap/ldap/v3"

	"github.com/dbflux/dbflux/dberr"
)

// Config describes how to reach and bind against an LDAP server.
type Config struct {
	// URL is a full ldap:// or ldaps:// address, e.g. "ldaps://dc1.example.com:636".
	URL string
	// UserDNTemplate builds a bind DN from a username, e.g.
	// "uid=%s,ou=people,dc=example,dc=com".
	UserDNTemplate string
	// InsecureSkipVerify disables TLS certificate verification for ldaps://
	// URLs. Only meant for connecting to internal directories during setup.
	InsecureSkipVerify bool
	// Timeout bounds the dial and bind round trip. Zero means 10 seconds.
	Timeout time.Duration
}

func (c Config) bindDN(username string) string {
	return fmt.Sprintf(c.UserDNTemplate, username)
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return c.Timeout
}

// Verify dials cfg.URL and attempts to bind as username/password. A nil
// error means the credentials are valid; a bind failure is reported as
// dberr.AuthFailed and a dial failure as dberr.ConnectionFailed.
func Verify(cfg Config, username, password string) error {
	return BindSecret(cfg, username, password)
}

// BindSecret performs the LDAP bind itself, closing the connection
// afterward regardless of outcome. It returns only the bind result, not
// the connection; Verify is a thin wrapper over it.
func BindSecret(cfg Config, username, password string) error {
	conn, err := dial(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	dn := cfg.bindDN(username)
	if err := conn.Bind(dn, password); err != nil {
		return dberr.Newf(dberr.AuthFailed, "ldapauth: bind as %s: %v", dn, err)
	}
	return nil
}

func dial(cfg Config) (*ldap.Conn, error) {
	opts := []ldap.DialOpt{ldap.DialWithDialer(&net.Dialer{Timeout: cfg.timeout()})}
	if cfg.InsecureSkipVerify {
		opts = append(opts, ldap.DialWithTLSConfig(&tls.Config{InsecureSkipVerify: true}))
	}

	conn, err := ldap.DialURL(cfg.URL, opts...)
	if err != nil {
		return nil, dberr.Newf(dberr.ConnectionFailed, "ldapauth: dial %s: %v", cfg.URL, err)
	}
	conn.SetTimeout(cfg.timeout())
	return conn, nil
}
