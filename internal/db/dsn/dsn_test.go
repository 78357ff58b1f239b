package dsn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yacook/yacook/internal/config"
	"github.com/yacook/yacook/internal/db/dsn"
)

func TestCreate(t *testing.T) {
	db := config.DB{
		Host:     "db",
		Port:     3306,
		User:     "yacook",
		Password: "secret",
		Name:     "recipes",
		Extras:   "parseTime=true",
	}

	tests := []struct {
		name   string
		engine string
		path   string
		want   string
	}{
		{name: "mysql", engine: config.DBEngineMySQL, want: "yacook:secret@tcp(db:3306)/recipes?parseTime=true"},
		{name: "postgres", engine: config.DBEnginePostgres, want: "host=db port=3306 user=yacook password=secret dbname=recipes parseTime=true"},
		{name: "sqlite", engine: config.DBEngineSQLite, path: "yacook.db", want: "yacook.db?_pragma=foreign_keys(1)"},
		{name: "sqlite with params", engine: config.DBEngineSQLite, path: "file:x.db?mode=memory", want: "file:x.db?mode=memory&_pragma=foreign_keys(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Config{DB: db}
			c.DB.Engine = tt.engine
			c.DB.Path = tt.path

			assert.Equal(t, tt.want, dsn.Create(&c))
		})
	}
}
