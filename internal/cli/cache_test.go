package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/matzehuels/ticketgraph/pkg/cache"
	"github.com/matzehuels/ticketgraph/pkg/config"
)

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without ttl", func(t *testing.T) {
		c, err := newCache(ctx, config.CacheConfig{Dir: t.TempDir()})
		if err != nil {
			t.Fatalf("newCache() error: %v", err)
		}
		if _, ok := c.(cache.NullCache); !ok {
			t.Errorf("newCache() = %T, want cache.NullCache", c)
		}
	})

	t.Run("file cache in configured dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "responses")
		c, err := newCache(ctx, config.CacheConfig{TTL: time.Minute, Dir: dir})
		if err != nil {
			t.Fatalf("newCache() error: %v", err)
		}
		defer c.Close()
		fc, ok := c.(*cache.FileCache)
		if !ok {
			t.Fatalf("newCache() = %T, want *cache.FileCache", c)
		}
		if fc.Dir() != dir {
			t.Errorf("Dir() = %q, want %q", fc.Dir(), dir)
		}
	})

	t.Run("file cache in xdg dir", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", home)
		c, err := newCache(ctx, config.CacheConfig{TTL: time.Minute})
		if err != nil {
			t.Fatalf("newCache() error: %v", err)
		}
		defer c.Close()
		if _, err := os.Stat(filepath.Join(home, appName)); err != nil {
			t.Errorf("cache dir not created: %v", err)
		}
	})

	t.Run("redis when url set", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c, err := newCache(ctx, config.CacheConfig{TTL: time.Minute, RedisURL: "redis://" + mr.Addr()})
		if err != nil {
			t.Fatalf("newCache() error: %v", err)
		}
		defer c.Close()
		if _, ok := c.(*cache.RedisCache); !ok {
			t.Errorf("newCache() = %T, want *cache.RedisCache", c)
		}
	})
}

func TestCacheClearCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)

	fc, err := cache.NewFileCache(filepath.Join(home, appName))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if _, ok, _ := fc.Get(ctx, k); ok {
			t.Errorf("entry %q survived cache clear", k)
		}
	}
}
