package domain

import "context"

type Database interface {
	Ping(ctx context.Context) error
	ListUserDatabases(ctx context.Context) ([]string, error)
	Dump(ctx context.Context, name, outputPath string) error
}
