package collector

import (
	"testing"
	"time"

	"github.com/metron-db/metron/pkg/collector/mysql"
	"github.com/metron-db/metron/pkg/collector/postgres"
	"github.com/metron-db/metron/pkg/collector/saphana"
	"github.com/metron-db/metron/pkg/config"
	"github.com/metron-db/metron/pkg/errors"
)

func TestDefaultFactoryCreate(t *testing.T) {
	target := Target{URL: "localhost:5432", Username: "tuner", Password: "secret"}
	f := NewDefaultFactory()

	tests := []struct {
		name   string
		dbType config.DatabaseType
		check  func(t *testing.T, c Collector)
	}{
		{
			name:   "postgres variant",
			dbType: config.Postgres,
			check: func(t *testing.T, c Collector) {
				if _, ok := c.(*postgres.Collector); !ok {
					t.Errorf("expected *postgres.Collector, got %T", c)
				}
			},
		},
		{
			name:   "mysql variant",
			dbType: config.MySQL,
			check: func(t *testing.T, c Collector) {
				if _, ok := c.(*mysql.Collector); !ok {
					t.Errorf("expected *mysql.Collector, got %T", c)
				}
			},
		},
		{
			name:   "saphana variant",
			dbType: config.SAPHana,
			check: func(t *testing.T, c Collector) {
				if _, ok := c.(*saphana.Collector); !ok {
					t.Errorf("expected *saphana.Collector, got %T", c)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := f.Create(tt.dbType, target)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestDefaultFactoryCreateUnsupported(t *testing.T) {
	f := NewDefaultFactory()

	c, err := f.Create(config.DatabaseType("Oracle"), Target{URL: "localhost:1521"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if c != nil {
		t.Error("expected nil collector for unsupported type")
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeUnsupportedDatabase {
		t.Errorf("expected UNSUPPORTED_DATABASE, got %s", code)
	}
}

func TestDefaultFactoryDistinctInstances(t *testing.T) {
	f := NewDefaultFactory()
	target := Target{URL: "localhost:5432", Username: "tuner", Password: "secret"}

	first, err := f.Create(config.Postgres, target)
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.Create(config.Postgres, target)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("expected each Create call to return a fresh instance")
	}
}

func TestWithConnectTimeout(t *testing.T) {
	f := NewDefaultFactory(WithConnectTimeout(3 * time.Second))

	c, err := f.Create(config.Postgres, Target{URL: "localhost:5432"})
	if err != nil {
		t.Fatal(err)
	}
	pc, ok := c.(*postgres.Collector)
	if !ok {
		t.Fatalf("expected *postgres.Collector, got %T", c)
	}
	if pc.ConnectTimeout != 3*time.Second {
		t.Errorf("expected connect timeout 3s, got %v", pc.ConnectTimeout)
	}
}
