package cache

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Backend != BackendLRU {
		t.Errorf("expected Backend %q, got %q", BackendLRU, cfg.Backend)
	}
	if cfg.Capacity != 0 {
		t.Errorf("expected unbounded capacity, got %d", cfg.Capacity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
}

func TestNewStore(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantError bool
	}{
		{name: "default lru", cfg: DefaultConfig()},
		{name: "bounded lru", cfg: Config{Capacity: 3}},
		{name: "default sharded", cfg: DefaultShardedConfig()},
		{name: "negative capacity", cfg: Config{Capacity: -1}, wantError: true},
		{name: "sharded without capacity", cfg: Config{Backend: BackendSharded, NumShards: 1, TTL: time.Minute, EvictionPercentage: 10}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(tt.cfg)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if store != nil {
					t.Errorf("expected nil store on error, got %T", store)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error but got: %v", err)
			}

			store.Set("k", "v", 0)
			if !store.Has("k") {
				t.Error("expected store to hold k")
			}
			if v, ok := store.Get("k"); !ok || v != "v" {
				t.Errorf("expected k=v, got %v, %v", v, ok)
			}
			if l, ok := store.(Lener); !ok || l.Len() != 1 {
				t.Errorf("expected store to report one entry")
			}
		})
	}
}

func TestConfig_RoundTripsThroughInternal(t *testing.T) {
	now := func() time.Time { return time.Time{} }
	cfg := Config{
		Backend:            BackendSharded,
		Capacity:           10,
		NumShards:          2,
		TTL:                time.Second,
		EvictionPercentage: 5,
		EvictionInterval:   time.Minute,
		Now:                now,
	}

	got := convertFromInternal(cfg.toInternal())
	if got.Backend != cfg.Backend || got.Capacity != cfg.Capacity || got.NumShards != cfg.NumShards ||
		got.TTL != cfg.TTL || got.EvictionPercentage != cfg.EvictionPercentage || got.EvictionInterval != cfg.EvictionInterval {
		t.Errorf("config did not survive conversion: %+v", got)
	}
	if got.Now == nil {
		t.Error("expected clock to be carried over")
	}
}
