// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package dangerous

import "testing"

func TestDetectTableDriven(t *testing.T) {
	cases := []struct {
		name string
		sql  string
		kind Kind
		want bool
	}{
		{"delete no where", "DELETE FROM t", DeleteNoWhere, true},
		{"delete with where", "DELETE FROM t WHERE id=1", 0, false},
		{"update no where", "UPDATE t SET x=1", UpdateNoWhere, true},
		{"update with where", "UPDATE t SET x=1 WHERE id=1", 0, false},
		{"truncate", "TRUNCATE TABLE u", Truncate, true},
		{"drop", "DROP TABLE u", Drop, true},
		{"alter", "ALTER TABLE u ADD COLUMN x INT", Alter, true},
		{"select", "SELECT * FROM t", 0, false},
		{"insert", "INSERT INTO t (a) VALUES (1)", 0, false},
		{"cte delete no where", "WITH cte AS (SELECT 1) DELETE FROM t", DeleteNoWhere, true},
		{"cte update no where", "WITH cte AS (SELECT 1) UPDATE t SET x=1", UpdateNoWhere, true},
		{"script with danger", "SELECT 1; DELETE FROM t; SELECT 2", Script, true},
		{"script all safe", "SELECT 1; SELECT 2", 0, false},
		{"unterminated block comment", "/* DELETE FROM t", 0, false},
		{"leading line comment then dangerous", "-- a comment\nDELETE FROM t", DeleteNoWhere, true},
		{"leading block comment then dangerous", "/* note */ DELETE FROM t", DeleteNoWhere, true},
		{"empty", "", 0, false},
		{"only comment", "-- nothing else", 0, false},
		{"whitespace only", "   \n\t ", 0, false},
		{"lowercase delete", "delete from t", DeleteNoWhere, true},
		{"mixed case truncate", "TrUnCaTe TaBlE u", Truncate, true},
		{"where substring in column name", "UPDATE t SET wherefore=1", UpdateNoWhere, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k, ok := Detect(tc.sql)
			if ok != tc.want {
				t.Fatalf("Detect(%q) ok = %v, want %v (kind=%v)", tc.sql, ok, tc.want, k)
			}
			if ok && k != tc.kind {
				t.Fatalf("Detect(%q) kind = %v, want %v", tc.sql, k, tc.kind)
			}
		})
	}
}

func TestKindMessageNeverEmpty(t *testing.T) {
	for k := DeleteNoWhere; k <= RedisFlushDb; k++ {
		if k.Message() == "" {
			t.Fatalf("Kind %v has empty message", k)
		}
	}
}
