// Package store persists solved layouts in SQLite so a reloaded graph can
// start from its previous positions instead of re-running the settling
// phase from scratch.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/toposcope/toposcope/models"
)

// Store is a layout cache keyed by graph ID and node ID.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the layout database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening layout database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating layout database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS layouts (
		graph_id   TEXT NOT NULL,
		node_id    TEXT NOT NULL,
		position_x REAL NOT NULL,
		position_y REAL NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (graph_id, node_id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveLayout writes the current node positions of the graph, replacing any
// previous layout stored under the same graph ID. Graphs without an ID are
// not cached: unrelated documents would all collide under the empty key.
func (s *Store) SaveLayout(ctx context.Context, g *models.Graph) error {
	if g.ID == "" {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving layout: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM layouts WHERE graph_id = ?`, g.ID); err != nil {
		return fmt.Errorf("clearing previous layout: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO layouts (graph_id, node_id, position_x, position_y)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("saving layout: %w", err)
	}
	defer stmt.Close()

	for _, n := range g.Nodes {
		if _, err := stmt.ExecContext(ctx, g.ID, n.ID, n.X, n.Y); err != nil {
			return fmt.Errorf("saving position for %s: %w", n.ID, err)
		}
	}
	return tx.Commit()
}

// LoadLayout applies the stored positions onto the graph's nodes and
// returns how many nodes were positioned. Nodes without a stored position
// are left untouched; the simulation will seed them deterministically.
func (s *Store) LoadLayout(ctx context.Context, g *models.Graph) (int, error) {
	if g.ID == "" {
		return 0, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT node_id, position_x, position_y FROM layouts WHERE graph_id = ?
	`, g.ID)
	if err != nil {
		return 0, fmt.Errorf("loading layout: %w", err)
	}
	defer rows.Close()

	positions := make(map[string][2]float64)
	for rows.Next() {
		var id string
		var x, y float64
		if err := rows.Scan(&id, &x, &y); err != nil {
			return 0, fmt.Errorf("scanning layout row: %w", err)
		}
		positions[id] = [2]float64{x, y}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("loading layout: %w", err)
	}

	applied := 0
	for _, n := range g.Nodes {
		pos, ok := positions[n.ID]
		if !ok {
			continue
		}
		n.X, n.Y = pos[0], pos[1]
		applied++
	}
	return applied, nil
}

// DeleteLayout removes every stored position for the graph.
func (s *Store) DeleteLayout(ctx context.Context, graphID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM layouts WHERE graph_id = ?`, graphID); err != nil {
		return fmt.Errorf("deleting layout: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
