package rdb

import (
	"database/sql"
	"net"

	"github.com/code19m/errx"
	"github.com/go-sql-driver/mysql"
	"github.com/spf13/cast"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
)

func openMySQL(cfg Config) (*bun.DB, error) {
	sqldb, err := sql.Open(DriverMySQL, mysqlDSN(cfg))
	if err != nil {
		return nil, errx.Wrap(err)
	}

	sqldb.SetMaxOpenConns(int(cfg.MaxOpenConns))
	sqldb.SetMaxIdleConns(int(cfg.MinConns))
	sqldb.SetConnMaxLifetime(cfg.MaxConnLifetime)
	sqldb.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	return bun.NewDB(sqldb, mysqldialect.New()), nil
}

// mysqlDSN builds the driver DSN. ClientFoundRows makes an UPDATE that
// writes identical values still report the matched row as affected.
func mysqlDSN(cfg Config) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, cast.ToString(cfg.Port))
	mc.DBName = cfg.Database
	mc.ParseTime = true
	mc.ClientFoundRows = true
	mc.Timeout = cfg.ConnectTimeout

	return mc.FormatDSN()
}
