package db

// Step moves the schema from Version-1 to Version. Every statement must be
// safe to re-run after a partial failure (CREATE ... IF NOT EXISTS).
type Step struct {
	Version    int
	Statements []string
}

// Steps returns the ordered migration steps for a dialect. Append new steps
// at the end; never edit an applied one.
func Steps(d Dialect) []Step {
	id := "INTEGER PRIMARY KEY"
	ts := "DATETIME"
	if d == DialectPostgres {
		id = "BIGSERIAL PRIMARY KEY"
		ts = "TIMESTAMPTZ"
	}

	return []Step{
		{
			Version: 1,
			Statements: []string{
				`CREATE TABLE IF NOT EXISTS items (
    id              ` + id + `,
    name            TEXT NOT NULL,
    buy_price       BIGINT NOT NULL,
    sell_price      BIGINT NOT NULL,
    units_per_buy   INTEGER NOT NULL CHECK (units_per_buy >= 1),
    amount_in_stock INTEGER NOT NULL
)`,
				`CREATE TABLE IF NOT EXISTS stock_changes (
    id        ` + id + `,
    item_id   BIGINT NOT NULL,
    amount    INTEGER NOT NULL,
    timestamp ` + ts + ` NOT NULL
)`,
			},
		},
	}
}

// LatestVersion returns the schema version Migrate brings a store to.
func LatestVersion() int {
	steps := Steps(DialectSQLite)
	return steps[len(steps)-1].Version
}
