package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdateSingleColumn(t *testing.T) {
	sql, args := buildUpdate("flavours", flavourPatchColumns, map[string]any{"price_per_serving": 2.0}, 1)

	require.Equal(t, "UPDATE flavours SET price_per_serving = $1 WHERE id = $2", sql)
	require.Equal(t, []any{2.0, 1}, args)
}

func TestBuildUpdateFollowsDeclarationOrder(t *testing.T) {
	fields := map[string]any{
		"price_per_serving": 1.4,
		"name":              "erdbeer",
	}

	sql, args := buildUpdate("flavours", flavourPatchColumns, fields, 3)

	require.Equal(t, "UPDATE flavours SET name = $1, price_per_serving = $2 WHERE id = $3", sql)
	require.Equal(t, []any{"erdbeer", 1.4, 3}, args)
}

func TestBuildUpdateAllColumns(t *testing.T) {
	fields := map[string]any{
		"name":           "Tim Werner",
		"email":          "timwerner@outlook.de",
		"loyalty_points": 100,
	}

	sql, args := buildUpdate("customers", customerPatchColumns, fields, 7)

	require.Equal(t, "UPDATE customers SET name = $1, email = $2, loyalty_points = $3 WHERE id = $4", sql)
	require.Equal(t, []any{"Tim Werner", "timwerner@outlook.de", 100, 7}, args)
}

func TestBuildUpdateIgnoresUnknownKeys(t *testing.T) {
	fields := map[string]any{
		"id":     9,
		"colour": "pink",
	}

	sql, args := buildUpdate("flavours", flavourPatchColumns, fields, 1)

	assert.Empty(t, sql)
	assert.Nil(t, args)
}

func TestBuildUpdateUnknownKeysMixedWithKnown(t *testing.T) {
	fields := map[string]any{
		"id":   9,
		"name": "stracciatella",
	}

	sql, args := buildUpdate("flavours", flavourPatchColumns, fields, 2)

	require.Equal(t, "UPDATE flavours SET name = $1 WHERE id = $2", sql)
	require.Equal(t, []any{"stracciatella", 2}, args)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 5.2, round2(4*1.3))
	assert.Equal(t, 1.43, round2((1.5+1.5+1.3)/3))
	assert.Equal(t, 0.0, round2(0))
	assert.Equal(t, 1.5, round2(1.5))
	assert.Equal(t, 3.9, round2(3*1.3))
}
