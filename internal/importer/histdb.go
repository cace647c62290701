package importer

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// histdbVisits counts commands run per directory in a zsh-histdb database.
const histdbVisits = `
	SELECT places.dir, COUNT(history.id)
	FROM history JOIN places ON history.place_id = places.id
	WHERE places.dir IS NOT NULL AND places.dir != ''
	GROUP BY places.dir
	ORDER BY places.dir
`

// ReadHistdb opens a zsh-histdb SQLite database read-only and returns every
// directory with the number of commands run in it as the weight.
func ReadHistdb(ctx context.Context, path string) ([]Visit, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open histdb: %w", err)
	}

	db, err := sql.Open("sqlite", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, histdbVisits)
	if err != nil {
		return nil, fmt.Errorf("query histdb: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var (
			dir   string
			count int64
		)
		if err := rows.Scan(&dir, &count); err != nil {
			return nil, fmt.Errorf("scan histdb row: %w", err)
		}
		visits = append(visits, Visit{Path: dir, Weight: float64(count)})
	}
	return visits, rows.Err()
}

// readOnlyDSN builds a read-only SQLite URI for path, escaping characters such
// as '?' and '#' that would otherwise end the file name.
func readOnlyDSN(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: "mode=ro"}
	return u.String()
}
