// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package ldapauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigBindDN(t *testing.T) {
	cfg := Config{UserDNTemplate: "uid=%s,ou=people,dc=example,dc=com"}
	assert.Equal(t, "uid=jdoe,ou=people,dc=example,dc=com", cfg.bindDN("jdoe"))
}

func TestConfigTimeoutDefault(t *testing.T) {
	assert.Equal(t, 10*time.Second, Config{}.timeout())
	assert.Equal(t, 5*time.Second, Config{Timeout: 5 * time.Second}.timeout())
}

func TestVerifyRejectsUnreachableServer(t *testing.T) {
	cfg := Config{
		URL:            "ldap://127.0.0.1:1",
		UserDNTemplate: "uid=%s,dc=example,dc=com",
		Timeout:        200 * time.Millisecond,
	}
	err := Verify(cfg, "jdoe", "secret")
	assert.Error(t, err)
}
