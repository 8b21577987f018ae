package persist

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/sceneworks/sceneedit/internal/scene"
)

var ErrSceneNotFound = errors.New("persist: scene not found")

var entityColumns = []string{
	"scene_name", "ordinal", "kind", "name",
	"pos_x", "pos_y", "pos_z",
	"rot_x", "rot_y", "rot_z",
	"scale_x", "scale_y", "scale_z",
	"color", "roughness", "metalness", "double_sided",
}

type SceneRepo struct {
	db *DB
}

func NewSceneRepo(db *DB) *SceneRepo {
	return &SceneRepo{db: db}
}

// Save replaces the stored copy of snap in one transaction. It reports false,
// writing nothing, when the stored checksum already matches.
func (r *SceneRepo) Save(ctx context.Context, snap scene.Snapshot) (bool, error) {
	sum := Checksum(snap)

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("scene save begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var stored []byte
	err = tx.QueryRow(ctx,
		`SELECT checksum FROM scenes WHERE name = $1 FOR UPDATE`, snap.Name,
	).Scan(&stored)
	switch {
	case err == nil && bytes.Equal(stored, sum):
		return false, nil
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return false, fmt.Errorf("scene save lookup: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO scenes (name, checksum, entity_count)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE
		 SET checksum = EXCLUDED.checksum,
		     entity_count = EXCLUDED.entity_count,
		     updated_at = now()`,
		snap.Name, sum, len(snap.Entities),
	); err != nil {
		return false, fmt.Errorf("scene save header: %w", err)
	}

	// Replace entity rows (delete + bulk copy)
	if _, err := tx.Exec(ctx, `DELETE FROM scene_entities WHERE scene_name = $1`, snap.Name); err != nil {
		return false, fmt.Errorf("scene save clear: %w", err)
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"scene_entities"},
		entityColumns,
		pgx.CopyFromSlice(len(snap.Entities), func(i int) ([]any, error) {
			e := snap.Entities[i]
			t := e.Transform
			return []any{
				snap.Name, i, e.Kind, e.Name,
				t.Position[0], t.Position[1], t.Position[2],
				t.Rotation[0], t.Rotation[1], t.Rotation[2],
				t.Scale[0], t.Scale[1], t.Scale[2],
				int32(e.Material.Color), e.Material.Roughness, e.Material.Metalness, e.Material.DoubleSided,
			}, nil
		}),
	); err != nil {
		return false, fmt.Errorf("scene save entities: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("scene save commit: %w", err)
	}
	r.db.log.Debug("scene stored", zap.String("scene", snap.Name), zap.Int("entities", len(snap.Entities)))
	return true, nil
}

// Load returns the stored snapshot, or ErrSceneNotFound.
func (r *SceneRepo) Load(ctx context.Context, name string) (scene.Snapshot, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT entity_count FROM scenes WHERE name = $1`, name,
	).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return scene.Snapshot{}, fmt.Errorf("%w: %s", ErrSceneNotFound, name)
	}
	if err != nil {
		return scene.Snapshot{}, err
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT kind, name, pos_x, pos_y, pos_z, rot_x, rot_y, rot_z,
		        scale_x, scale_y, scale_z, color, roughness, metalness, double_sided
		 FROM scene_entities WHERE scene_name = $1 ORDER BY ordinal`, name,
	)
	if err != nil {
		return scene.Snapshot{}, err
	}
	defer rows.Close()

	snap := scene.Snapshot{Name: name, Entities: make([]scene.EntityState, 0, count)}
	for rows.Next() {
		var (
			e     scene.EntityState
			color int32
		)
		t := &e.Transform
		if err := rows.Scan(
			&e.Kind, &e.Name,
			&t.Position[0], &t.Position[1], &t.Position[2],
			&t.Rotation[0], &t.Rotation[1], &t.Rotation[2],
			&t.Scale[0], &t.Scale[1], &t.Scale[2],
			&color, &e.Material.Roughness, &e.Material.Metalness, &e.Material.DoubleSided,
		); err != nil {
			return scene.Snapshot{}, err
		}
		e.Material.Color = uint32(color)
		snap.Entities = append(snap.Entities, e)
	}
	return snap, rows.Err()
}

// List returns every stored scene ordered by name.
func (r *SceneRepo) List(ctx context.Context) ([]scene.SceneInfo, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT name, entity_count, updated_at FROM scenes ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []scene.SceneInfo
	for rows.Next() {
		var in scene.SceneInfo
		if err := rows.Scan(&in.Name, &in.Entities, &in.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, in)
	}
	return result, rows.Err()
}

// Delete removes a stored scene and its entities.
func (r *SceneRepo) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM scenes WHERE name = $1`, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrSceneNotFound, name)
	}
	return nil
}
