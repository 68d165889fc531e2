package migrate

import (
	"database/sql"

	"gatemap/internal/logger"
)

// 背景：首次运行自动创建水闸表与配色表
// 约束：使用 IF NOT EXISTS 避免与既有结构冲突；仅创建最小必需结构
func EnsureSchema(db *sql.DB) error {
	for i, s := range Statements() {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}

// Statements：建表语句，按顺序执行
func Statements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS _gates (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            office TEXT NOT NULL DEFAULT '',
            project TEXT NOT NULL DEFAULT '',
            river TEXT NOT NULL DEFAULT '',
            lat DOUBLE PRECISION,
            lon DOUBLE PRECISION,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_gates_office_project ON _gates(office, project)`,
		`CREATE TABLE IF NOT EXISTS _office_palette (
            seq INT PRIMARY KEY,
            office TEXT NOT NULL,
            province TEXT NOT NULL,
            project TEXT NOT NULL DEFAULT '',
            color TEXT NOT NULL DEFAULT ''
        )`,
	}
}
