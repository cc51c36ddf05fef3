package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNoConfig is returned by Load when no configuration has been saved
// yet.
var ErrNoConfig = errors.New("store: no harness configuration saved")

// Load reads the persisted Config.
func (s *Store) Load(ctx context.Context) (Config, error) {
	var cfg Config
	var nodeID int64
	err := s.db.QueryRowContext(ctx, `
		SELECT controller_addr, dut_node_id, dut_ieee_address
		FROM harness_config WHERE id = 1
	`).Scan(&cfg.ControllerAddr, &nodeID, &cfg.DUTIEEEAddress)
	if errors.Is(err, sql.ErrNoRows) {
		return Config{}, ErrNoConfig
	}
	if err != nil {
		return Config{}, fmt.Errorf("load harness config: %w", err)
	}
	cfg.DUTNodeID = uint16(nodeID)
	return cfg, nil
}

// Save upserts the persisted Config.
func (s *Store) Save(ctx context.Context, cfg Config) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO harness_config (id, controller_addr, dut_node_id, dut_ieee_address, updated_at)
		VALUES (1, ?, ?, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET
			controller_addr = excluded.controller_addr,
			dut_node_id = excluded.dut_node_id,
			dut_ieee_address = excluded.dut_ieee_address,
			updated_at = excluded.updated_at
	`, cfg.ControllerAddr, cfg.DUTNodeID, cfg.DUTIEEEAddress)
	if err != nil {
		return fmt.Errorf("save harness config: %w", err)
	}
	return nil
}
