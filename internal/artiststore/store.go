package artiststore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tunetrace/internal/config"
)

// ErrNotFound indicates the requested artist does not exist.
var ErrNotFound = errors.New("artist not found")

// Store manages artist persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the artist database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

const artistColumns = "id, name, song_name, channel_url, auto_verified, manually_verified, created_at, updated_at"

func scanArtist(scanner interface{ Scan(dest ...any) error }) (*Artist, error) {
	var (
		id         int64
		name       string
		songName   sql.NullString
		channelURL sql.NullString
		auto       sql.NullInt64
		manual     sql.NullInt64
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(&id, &name, &songName, &channelURL, &auto, &manual, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	artist := &Artist{
		ID:               id,
		Name:             name,
		SongName:         songName.String,
		ChannelURL:       channelURL.String,
		AutoVerified:     verdictFromDB(auto),
		ManuallyVerified: verdictFromDB(manual),
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		artist.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		artist.UpdatedAt = updated
	}
	return artist, nil
}

// UpsertArtist inserts the artist if missing. On an existing row the song
// name is filled in only when currently empty; nothing else is touched.
func (s *Store) UpsertArtist(ctx context.Context, name, songName string) (*Artist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("artist name required")
	}
	songName = strings.TrimSpace(songName)
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO artists (name, song_name, created_at, updated_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(name) DO UPDATE SET
             song_name = CASE
                 WHEN artists.song_name IS NULL OR artists.song_name = ''
                 THEN excluded.song_name
                 ELSE artists.song_name
             END,
             updated_at = excluded.updated_at`,
		name,
		nullableString(songName),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert artist: %w", err)
	}
	return s.GetByName(ctx, name)
}

// GetByName fetches an artist record by exact name.
func (s *Store) GetByName(ctx context.Context, name string) (*Artist, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+artistColumns+` FROM artists WHERE name = ?`, name)
	artist, err := scanArtist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artist: %w", err)
	}
	return artist, nil
}

// GetByID fetches an artist record by identifier.
func (s *Store) GetByID(ctx context.Context, id int64) (*Artist, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, id)
	artist, err := scanArtist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artist: %w", err)
	}
	return artist, nil
}

// ChannelURL returns the cached channel URL for an artist, or empty when the
// artist is unknown or unresolved.
func (s *Store) ChannelURL(ctx context.Context, name string) (string, error) {
	var channelURL sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT channel_url FROM artists WHERE name = ?`, name).Scan(&channelURL)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read channel url: %w", err)
	}
	return channelURL.String, nil
}

// SetChannelURL records a resolved channel URL. An empty URL never overwrites
// an existing resolution.
func (s *Store) SetChannelURL(ctx context.Context, name, channelURL string) error {
	channelURL = strings.TrimSpace(channelURL)
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	var res sql.Result
	var err error
	if channelURL == "" {
		res, err = s.db.ExecContext(
			ctx,
			`UPDATE artists SET updated_at = ? WHERE name = ?`,
			timestamp, name,
		)
	} else {
		res, err = s.db.ExecContext(
			ctx,
			`UPDATE artists SET channel_url = ?, updated_at = ? WHERE name = ?`,
			channelURL, timestamp, name,
		)
	}
	if err != nil {
		return fmt.Errorf("set channel url: %w", err)
	}
	return requireRow(res)
}

// SetAutoVerified records the automatic verification verdict.
func (s *Store) SetAutoVerified(ctx context.Context, name string, verdict Verdict) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE artists SET auto_verified = ?, updated_at = ? WHERE name = ?`,
		verdictToDB(verdict), timestamp, name,
	)
	if err != nil {
		return fmt.Errorf("set auto verified: %w", err)
	}
	return requireRow(res)
}

// SetManualVerification records a human verdict, which overrides the
// automatic one. VerdictUnknown clears the override.
func (s *Store) SetManualVerification(ctx context.Context, id int64, verdict Verdict) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE artists SET manually_verified = ?, updated_at = ? WHERE id = ?`,
		verdictToDB(verdict), timestamp, id,
	)
	if err != nil {
		return fmt.Errorf("set manual verification: %w", err)
	}
	return requireRow(res)
}

// PendingResolution lists artists with no resolved channel URL yet, ordered
// by name.
func (s *Store) PendingResolution(ctx context.Context) ([]*Artist, error) {
	return s.list(ctx, `SELECT `+artistColumns+` FROM artists
        WHERE channel_url IS NULL OR channel_url = ''
        ORDER BY name`)
}

// PendingVerification lists resolved artists with a representative song whose
// automatic verdict has not been recorded yet, ordered by name.
func (s *Store) PendingVerification(ctx context.Context) ([]*Artist, error) {
	return s.list(ctx, `SELECT `+artistColumns+` FROM artists
        WHERE channel_url IS NOT NULL AND channel_url != ''
          AND song_name IS NOT NULL AND song_name != ''
          AND auto_verified IS NULL
        ORDER BY name`)
}

// NeedingReview lists artists that failed automatic verification and have no
// manual verdict, ordered by name.
func (s *Store) NeedingReview(ctx context.Context) ([]*Artist, error) {
	return s.list(ctx, `SELECT `+artistColumns+` FROM artists
        WHERE auto_verified = 0 AND manually_verified IS NULL
        ORDER BY name`)
}

// All lists every artist record ordered by name.
func (s *Store) All(ctx context.Context) ([]*Artist, error) {
	return s.list(ctx, `SELECT `+artistColumns+` FROM artists ORDER BY name`)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*Artist, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	var artists []*Artist
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return artists, nil
}

// Stats summarizes the database for status reporting.
type Stats struct {
	Total            int
	Resolved         int
	AutoVerified     int
	AutoFailed       int
	ManualOverrides  int
	AwaitingReview   int
	AwaitingResolve  int
	AwaitingVerified int
}

// Summarize computes aggregate counts over all artist records.
func (s *Store) Summarize(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx, `SELECT
        COUNT(*),
        COUNT(CASE WHEN channel_url IS NOT NULL AND channel_url != '' THEN 1 END),
        COUNT(CASE WHEN auto_verified = 1 THEN 1 END),
        COUNT(CASE WHEN auto_verified = 0 THEN 1 END),
        COUNT(CASE WHEN manually_verified IS NOT NULL THEN 1 END),
        COUNT(CASE WHEN auto_verified = 0 AND manually_verified IS NULL THEN 1 END),
        COUNT(CASE WHEN channel_url IS NULL OR channel_url = '' THEN 1 END),
        COUNT(CASE WHEN channel_url IS NOT NULL AND channel_url != ''
              AND song_name IS NOT NULL AND song_name != ''
              AND auto_verified IS NULL THEN 1 END)
        FROM artists`).Scan(
		&stats.Total,
		&stats.Resolved,
		&stats.AutoVerified,
		&stats.AutoFailed,
		&stats.ManualOverrides,
		&stats.AwaitingReview,
		&stats.AwaitingResolve,
		&stats.AwaitingVerified,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("summarize artists: %w", err)
	}
	return stats, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
