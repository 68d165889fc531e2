// 包 store: 提供与 PostgreSQL 的数据访问层，保存水闸列表与管理处配色表
package store

import (
	"context"
	"database/sql"
	"fmt"

	"gatemap/internal/gate"
	"gatemap/internal/logger"
	"gatemap/internal/palette"

	_ "github.com/lib/pq"
)

// Store: 数据库访问入口，持有连接池
type Store struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

// Open: 使用 DSN 打开数据库连接并配置连接池参数
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

func nullable(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func fromNullable(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return gate.Coord(n.Float64)
}

// LoadGates: 按导入顺序读取全部水闸
func (s *Store) LoadGates(ctx context.Context) ([]gate.Gate, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, office, project, river, lat, lon FROM _gates ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query gates: %w", err)
	}
	defer rows.Close()
	var out []gate.Gate
	for rows.Next() {
		var g gate.Gate
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&g.Name, &g.Office, &g.Project, &g.River, &lat, &lon); err != nil {
			return nil, fmt.Errorf("scan gate: %w", err)
		}
		g.Lat, g.Lon = fromNullable(lat), fromNullable(lon)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.L().Debug("db_gates_loaded", "count", len(out))
	return out, nil
}

// ReplaceGates: 在单个事务内整体替换水闸表
func (s *Store) ReplaceGates(ctx context.Context, gs []gate.Gate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, "DELETE FROM _gates"); err != nil {
		return fmt.Errorf("clear gates: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO _gates(name, office, project, river, lat, lon) VALUES($1,$2,$3,$4,$5,$6)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, g := range gs {
		if _, err := stmt.ExecContext(ctx, g.Name, g.Office, g.Project, g.River, nullable(g.Lat), nullable(g.Lon)); err != nil {
			return fmt.Errorf("insert gate %q: %w", g.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.L().Info("db_gates_replaced", "count", len(gs))
	return nil
}

// LoadPalette: 读取配色表；seq 保证首个匹配语义不变
func (s *Store) LoadPalette(ctx context.Context) (*palette.Table, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT office, province, project, color FROM _office_palette ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("query palette: %w", err)
	}
	defer rows.Close()
	var es []palette.Entry
	for rows.Next() {
		var e palette.Entry
		if err := rows.Scan(&e.Office, &e.Province, &e.Project, &e.Color); err != nil {
			return nil, fmt.Errorf("scan palette: %w", err)
		}
		es = append(es, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return palette.FromEntries(es), nil
}

// ReplacePalette: 整体替换配色表
func (s *Store) ReplacePalette(ctx context.Context, t *palette.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, "DELETE FROM _office_palette"); err != nil {
		return fmt.Errorf("clear palette: %w", err)
	}
	for i, e := range t.Entries() {
		if _, err := tx.ExecContext(ctx, "INSERT INTO _office_palette(seq, office, province, project, color) VALUES($1,$2,$3,$4,$5)",
			i, e.Office, e.Province, e.Project, e.Color); err != nil {
			return fmt.Errorf("insert palette row %d: %w", i, err)
		}
	}
	return tx.Commit()
}
