package database

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/argosbackup/argos/internal/config"
	"github.com/argosbackup/argos/internal/domain"
)

// System schemas are never dumped.
var systemSchemas = map[string]bool{
	"information_schema": true,
	"performance_schema": true,
}

type MySQLDatabase struct {
	cfg  *config.DatabaseConfig
	conn *sql.DB
	comp domain.Compressor
}

func NewMySQL(cfg *config.DatabaseConfig, password string, comp domain.Compressor) (*MySQLDatabase, error) {
	dsnCfg := mysql.NewConfig()
	dsnCfg.User = cfg.User
	dsnCfg.Passwd = password
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := sql.Open("mysql", dsnCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}

	return &MySQLDatabase{cfg: cfg, conn: conn, comp: comp}, nil
}

func (m *MySQLDatabase) Ping(ctx context.Context) error {
	if err := m.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("mysql ping failed: %w", err)
	}
	return nil
}

// ListUserDatabases returns every database on the server except the system
// schemas.
func (m *MySQLDatabase) ListUserDatabases(ctx context.Context) ([]string, error) {
	rows, err := m.conn.QueryContext(ctx, "SHOW DATABASES")
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan database name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}

	return filterUserDatabases(names), nil
}

func filterUserDatabases(names []string) []string {
	var user []string
	for _, name := range names {
		if !systemSchemas[name] {
			user = append(user, name)
		}
	}
	return user
}

// Dump runs mysqldump for one database and streams its output through the
// compressor into outputPath. The dump tool's own exit status decides
// success; compressor close errors are surfaced as well. A failed dump never
// leaves a partial artifact behind.
func (m *MySQLDatabase) Dump(ctx context.Context, name, outputPath string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create dump file: %w", err)
	}

	gz := m.comp.Wrap(out)

	cmd := m.dumpCommand(ctx, name)
	cmd.Stdout = gz
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		gz.Close()
		out.Close()
		os.Remove(outputPath)
		return fmt.Errorf("mysqldump %s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}

	if err := gz.Close(); err != nil {
		out.Close()
		os.Remove(outputPath)
		return fmt.Errorf("finish compressed dump of %s: %w", name, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("close dump file for %s: %w", name, err)
	}

	return nil
}

func (m *MySQLDatabase) Close() error {
	return m.conn.Close()
}

func (m *MySQLDatabase) dumpCommand(ctx context.Context, name string) *exec.Cmd {
	return exec.CommandContext(ctx, "mysqldump", dumpArgs(m.cfg, name)...)
}

func dumpArgs(cfg *config.DatabaseConfig, name string) []string {
	// --defaults-extra-file must come before every other option.
	return []string{
		fmt.Sprintf("--defaults-extra-file=%s", cfg.DefaultsFile),
		fmt.Sprintf("--host=%s", cfg.Host),
		fmt.Sprintf("--port=%d", cfg.Port),
		fmt.Sprintf("--user=%s", cfg.User),
		"--single-transaction",
		"--quick",
		"--events",
		"--databases", name,
	}
}
