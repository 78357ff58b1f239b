package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownDBEngine error if config db.engine is not one of sqlite, mysql, postgres.
	ErrUnknownDBEngine = errors.New("toml config db.engine must be sqlite, mysql or postgres")

	// ErrUnknownMediaBackend error if config media.backend is not one of local, s3, minio.
	ErrUnknownMediaBackend = errors.New("toml config media.backend must be local, s3 or minio")

	// ErrMediaBucketEmpty error if an object storage backend has no bucket.
	ErrMediaBucketEmpty = errors.New("toml config media.bucket can not be empty for s3 and minio")

	// ErrUnknownCacheBackend error if config cache.backend is not one of none, memory, redis.
	ErrUnknownCacheBackend = errors.New("toml config cache.backend must be none, memory or redis")

	// ErrNegativePageSize error if config recipes.pageSize is below zero.
	ErrNegativePageSize = errors.New("toml config recipes.pageSize can not be negative")
)
