package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServiceName == "" {
		t.Error("ServiceName default is empty")
	}
	if cfg.Server.Port == "" {
		t.Error("Server.Port default is empty")
	}
	if cfg.DB.MaxOpenConns <= 0 {
		t.Errorf("DB.MaxOpenConns default: got %d, want > 0", cfg.DB.MaxOpenConns)
	}
	if cfg.JWT.SigningKey == "" {
		t.Error("JWT.SigningKey default is empty")
	}
	if cfg.Metrics.Prefix == "" {
		t.Error("Metrics.Prefix default is empty")
	}
}

func TestGetDSNContainsAllParts(t *testing.T) {
	db := DBConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "svc",
		Password: "secret",
		DBName:   "vendor_db",
		SSLMode:  "require",
	}

	dsn := db.GetDSN()
	want := "host=db.internal port=5433 user=svc password=secret dbname=vendor_db sslmode=require"
	if dsn != want {
		t.Errorf("GetDSN: got %q, want %q", dsn, want)
	}
}
