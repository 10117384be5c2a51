package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dbutil "github.com/llehouerou/mcotp/internal/db"
	"github.com/llehouerou/mcotp/internal/playlist"
	"github.com/llehouerou/mcotp/internal/queue"
)

// Saved is a stored queue snapshot.
type Saved struct {
	Snapshot queue.Snapshot
	SavedAt  time.Time
}

// getSnapshot returns nil when no snapshot is stored.
func getSnapshot(ctx context.Context, db *sql.DB) (*Saved, error) {
	var providerJSON string
	var hasCurrent bool
	var savedAt int64
	err := db.QueryRowContext(ctx,
		`SELECT provider, has_current, saved_at FROM queue_state WHERE id = 1`).
		Scan(&providerJSON, &hasCurrent, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tracks, err := getTracks(ctx, db)
	if err != nil {
		return nil, err
	}

	saved := &Saved{SavedAt: time.Unix(savedAt, 0)}
	// Document decoding never fails; a damaged provider restores as shuffle.
	_ = json.Unmarshal([]byte(providerJSON), &saved.Snapshot.Provider)

	saved.Snapshot.FutureItems = tracks
	if hasCurrent && len(tracks) > 0 {
		current := tracks[0]
		saved.Snapshot.CurrentItem = &current
		saved.Snapshot.FutureItems = tracks[1:]
	}
	return saved, nil
}

func getTracks(ctx context.Context, db *sql.DB) ([]playlist.Track, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT media_id, song_id, band_id, album_id, artist, title, display_title,
			album, track_number, year, path
		FROM queue_tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracks := []playlist.Track{}
	for rows.Next() {
		var t playlist.Track
		var albumID, trackNumber, year sql.NullInt64
		var album sql.NullString

		err := rows.Scan(&t.MediaID, &t.SongID, &t.BandID, &albumID, &t.Artist, &t.Title,
			&t.DisplayTitle, &album, &trackNumber, &year, &t.Path)
		if err != nil {
			return nil, err
		}

		t.AlbumID = dbutil.NullInt64Value(albumID)
		t.Album = dbutil.NullStringValue(album)
		t.TrackNumber = int(dbutil.NullInt64Value(trackNumber))
		t.Year = int(dbutil.NullInt64Value(year))
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

func saveSnapshot(ctx context.Context, sqlDB *sql.DB, s queue.Snapshot, now time.Time) error {
	providerJSON, err := json.Marshal(s.Provider)
	if err != nil {
		return fmt.Errorf("encoding provider: %w", err)
	}

	return dbutil.WithTx(ctx, sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM queue_tracks`); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO queue_state (id, provider, has_current, saved_at)
			VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				provider = excluded.provider,
				has_current = excluded.has_current,
				saved_at = excluded.saved_at
		`, string(providerJSON), s.CurrentItem != nil, now.Unix())
		if err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO queue_tracks (position, media_id, song_id, band_id, album_id, artist,
				title, display_title, album, track_number, year, path)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range s.Items() {
			_, err = stmt.ExecContext(ctx, i, t.MediaID, t.SongID, t.BandID,
				dbutil.ZeroAsNull(t.AlbumID), t.Artist, t.Title, t.DisplayTitle,
				dbutil.ZeroAsNull(t.Album), dbutil.ZeroAsNull(t.TrackNumber),
				dbutil.ZeroAsNull(t.Year), t.Path)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func clearSnapshot(ctx context.Context, sqlDB *sql.DB) error {
	return dbutil.WithTx(ctx, sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM queue_tracks`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM queue_state`)
		return err
	})
}
