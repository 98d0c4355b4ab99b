package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/lightning/internal/build"
)

// ErrBuildNotFound is returned when no build has the requested name.
var ErrBuildNotFound = errors.New("build not found")

// BuildInfo describes a stored build without decoding it.
type BuildInfo struct {
	Name        string
	Class       string
	Fingerprint string
	UpdatedAt   time.Time
}

// BuildRepository stores build snapshots keyed by build name.
type BuildRepository struct {
	pool *pgxpool.Pool
}

// NewBuildRepository creates a new BuildRepository.
func NewBuildRepository(pool *pgxpool.Pool) *BuildRepository {
	return &BuildRepository{pool: pool}
}

// Save upserts b under its name. A build whose fingerprint matches the
// stored one is not rewritten; written reports whether a row changed.
func (r *BuildRepository) Save(ctx context.Context, b *build.Build) (written bool, err error) {
	fp, err := b.Fingerprint()
	if err != nil {
		return false, fmt.Errorf("saving build %q: %w", b.Name, err)
	}
	def := b.Def()
	raw, err := json.Marshal(def)
	if err != nil {
		return false, fmt.Errorf("encoding build %q: %w", b.Name, err)
	}

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO builds (name, class, fingerprint, def)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET class = EXCLUDED.class,
		    fingerprint = EXCLUDED.fingerprint,
		    def = EXCLUDED.def,
		    updated_at = now()
		WHERE builds.fingerprint <> EXCLUDED.fingerprint`,
		b.Name, def.Tree.Class.String(), fp, raw,
	)
	if err != nil {
		return false, fmt.Errorf("saving build %q: %w", b.Name, err)
	}

	written = tag.RowsAffected() > 0
	slog.Debug("saved build", "name", b.Name, "fingerprint", fp, "written", written)
	return written, nil
}

// Load returns the stored snapshot of the build called name.
func (r *BuildRepository) Load(ctx context.Context, name string) (build.Def, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT def FROM builds WHERE name = $1`, name).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return build.Def{}, fmt.Errorf("loading build %q: %w", name, ErrBuildNotFound)
		}
		return build.Def{}, fmt.Errorf("loading build %q: %w", name, err)
	}

	var def build.Def
	if err := json.Unmarshal(raw, &def); err != nil {
		return build.Def{}, fmt.Errorf("decoding build %q: %w", name, err)
	}
	return def, nil
}

// Fingerprint returns the stored fingerprint of the build called name.
func (r *BuildRepository) Fingerprint(ctx context.Context, name string) (string, error) {
	var fp string
	err := r.pool.QueryRow(ctx, `SELECT fingerprint FROM builds WHERE name = $1`, name).Scan(&fp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("querying build %q: %w", name, ErrBuildNotFound)
		}
		return "", fmt.Errorf("querying build %q: %w", name, err)
	}
	return fp, nil
}

// List returns every stored build ordered by name.
func (r *BuildRepository) List(ctx context.Context) ([]BuildInfo, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, class, fingerprint, updated_at FROM builds ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing builds: %w", err)
	}
	defer rows.Close()

	var out []BuildInfo
	for rows.Next() {
		var bi BuildInfo
		if err := rows.Scan(&bi.Name, &bi.Class, &bi.Fingerprint, &bi.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning build row: %w", err)
		}
		out = append(out, bi)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating builds: %w", err)
	}
	return out, nil
}

// Delete removes the build called name.
func (r *BuildRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM builds WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting build %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting build %q: %w", name, ErrBuildNotFound)
	}
	return nil
}
