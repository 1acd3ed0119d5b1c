package store

import (
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"
)

// foldFunc is the SQL name of the Unicode lower-casing function. SQLite's own
// lower() and LIKE only fold ASCII letters.
const foldFunc = "pd_fold"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(foldFunc, 1, func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case nil:
			return nil, nil
		case string:
			return fold(v), nil
		case []byte:
			return fold(string(v)), nil
		default:
			return v, nil
		}
	})
}

// fold is the case folding shared by SQL matching and its Go callers; it must
// agree with the in-memory predicates, which use strings.ToLower.
func fold(s string) string { return strings.ToLower(s) }

// foldLike returns a condition matching col against a folded LIKE pattern.
func foldLike(col string) string {
	return foldFunc + `(` + col + `) LIKE ? ESCAPE '\'`
}
