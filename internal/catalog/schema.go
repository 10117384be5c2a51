package catalog

import (
	"context"
	"database/sql"
)

// InitSchema creates the catalog tables if they do not exist.
// The scanner owns the contents; the player only reads them.
func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS band (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			path TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS album (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			band_id INTEGER NOT NULL REFERENCES band(id) ON DELETE CASCADE,
			year INTEGER
		);

		CREATE TABLE IF NOT EXISTS song (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			band_id INTEGER NOT NULL REFERENCES band(id) ON DELETE CASCADE,
			album_id INTEGER REFERENCES album(id) ON DELETE CASCADE,
			year INTEGER,
			track_number INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_song_band ON song(band_id);
		CREATE INDEX IF NOT EXISTS idx_song_album ON song(album_id, track_number);
		CREATE INDEX IF NOT EXISTS idx_album_band ON album(band_id);

		CREATE TABLE IF NOT EXISTS location (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			parent_id INTEGER REFERENCES location(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_location_parent ON location(parent_id);

		CREATE TABLE IF NOT EXISTS band_location (
			band_id INTEGER NOT NULL REFERENCES band(id) ON DELETE CASCADE,
			location_id INTEGER NOT NULL REFERENCES location(id) ON DELETE CASCADE,
			PRIMARY KEY (band_id, location_id)
		);
	`)
	return err
}
