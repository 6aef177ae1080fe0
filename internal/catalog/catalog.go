// Package catalog keeps a small registry of known crates in a SQLite
// database, so CLI and MCP sessions can address crates by name instead of
// path.
package catalog

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"provq/internal/errors"
	"provq/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS crates (
    name         TEXT PRIMARY KEY,
    path         TEXT NOT NULL,
    added_at     TEXT NOT NULL,
    last_used_at TEXT
);
`

// Entry is one registered crate.
type Entry struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	AddedAt    string `json:"addedAt"`
	LastUsedAt string `json:"lastUsedAt,omitempty"`
}

// Catalog is an open crate registry.
type Catalog struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the registry at <root>/.provq/catalog.db.
func Open(root string, logger *logging.Logger) (*Catalog, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	dir := filepath.Join(root, ".provq")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New(errors.CatalogUnavailable, "cannot create catalog directory", err)
	}
	dbPath := filepath.Join(dir, "catalog.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.New(errors.CatalogUnavailable, "cannot open catalog database", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, errors.New(errors.CatalogUnavailable, "cannot set pragma", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, errors.New(errors.CatalogUnavailable, "cannot initialize catalog schema", err)
	}

	return &Catalog{conn: conn, logger: logger, dbPath: dbPath}, nil
}

// Close closes the registry.
func (c *Catalog) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Path returns the database file location.
func (c *Catalog) Path() string {
	return c.dbPath
}

// Register adds a crate under a name, replacing any previous registration
// of the same name.
func (c *Catalog) Register(name, path string) error {
	if name == "" || path == "" {
		return errors.Newf(errors.InvalidParameter, "crate name and path are required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.New(errors.InvalidParameter, "cannot resolve crate path", err)
	}

	_, err = c.conn.Exec(`
		INSERT OR REPLACE INTO crates (name, path, added_at, last_used_at)
		VALUES (?, ?, ?, NULL)
	`, name, abs, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return errors.New(errors.CatalogUnavailable, "cannot register crate", err)
	}

	c.logger.Info("crate registered", map[string]interface{}{
		"name": name,
		"path": abs,
	})
	return nil
}

// Lookup finds a registered crate by name.
func (c *Catalog) Lookup(name string) (Entry, bool, error) {
	var e Entry
	var lastUsed sql.NullString
	err := c.conn.QueryRow(`
		SELECT name, path, added_at, last_used_at FROM crates WHERE name = ?
	`, name).Scan(&e.Name, &e.Path, &e.AddedAt, &lastUsed)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, errors.New(errors.CatalogUnavailable, "catalog lookup failed", err)
	}
	e.LastUsedAt = lastUsed.String
	return e, true, nil
}

// List returns all registered crates ordered by name.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.conn.Query(`
		SELECT name, path, added_at, last_used_at FROM crates ORDER BY name
	`)
	if err != nil {
		return nil, errors.New(errors.CatalogUnavailable, "catalog listing failed", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var lastUsed sql.NullString
		if err := rows.Scan(&e.Name, &e.Path, &e.AddedAt, &lastUsed); err != nil {
			return nil, errors.New(errors.CatalogUnavailable, "catalog row scan failed", err)
		}
		e.LastUsedAt = lastUsed.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New(errors.CatalogUnavailable, "catalog listing failed", err)
	}
	return entries, nil
}

// Remove deletes a registration. Removing an unknown name is not an error;
// the returned flag reports whether anything was deleted.
func (c *Catalog) Remove(name string) (bool, error) {
	res, err := c.conn.Exec(`DELETE FROM crates WHERE name = ?`, name)
	if err != nil {
		return false, errors.New(errors.CatalogUnavailable, "cannot remove crate", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.New(errors.CatalogUnavailable, "cannot remove crate", err)
	}
	return n > 0, nil
}

// Touch records that a crate was just used.
func (c *Catalog) Touch(name string) error {
	_, err := c.conn.Exec(`
		UPDATE crates SET last_used_at = ? WHERE name = ?
	`, time.Now().UTC().Format(time.RFC3339), name)
	if err != nil {
		return errors.New(errors.CatalogUnavailable, "cannot touch crate", err)
	}
	return nil
}
