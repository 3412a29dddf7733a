package repository

import (
	"fmt"
	"math"
	"strings"
)

// buildUpdate assembles a parameterized partial UPDATE from the subset of
// whitelisted columns present in fields, walking columns in declaration
// order. Client-supplied keys never reach the SQL text; only whitelist
// entries do, and all values are bound as parameters.
//
// Returns an empty statement when no whitelisted column is present, which
// callers treat as a successful no-op.
func buildUpdate(table string, columns []string, fields map[string]any, id int) (string, []any) {
	var set []string
	var args []any

	for _, col := range columns {
		if value, ok := fields[col]; ok {
			args = append(args, value)
			set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
		}
	}

	if len(set) == 0 {
		return "", nil
	}

	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(set, ", "), len(args))
	return sql, args
}

// round2 rounds to two decimal places, half away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
