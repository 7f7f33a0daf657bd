package cache

import (
	"context"
	"testing"
	"time"

	"github.com/forumhive/forum-api/pkg/config"
)

func TestNewDisabled(t *testing.T) {
	c, err := New(&config.RedisConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New() returned error for disabled cache: %v", err)
	}
	if c != nil {
		t.Fatal("expected nil cache when disabled")
	}
}

func TestDisabledCacheOperations(t *testing.T) {
	var c *Cache

	if _, err := c.Get("comment:1"); err != ErrCacheDisabled {
		t.Errorf("Get error = %v, want ErrCacheDisabled", err)
	}
	if err := c.Set("comment:1", "value", time.Minute); err != ErrCacheDisabled {
		t.Errorf("Set error = %v, want ErrCacheDisabled", err)
	}
	if err := c.Delete("comment:1"); err != ErrCacheDisabled {
		t.Errorf("Delete error = %v, want ErrCacheDisabled", err)
	}
	if _, err := c.Exists("comment:1"); err != ErrCacheDisabled {
		t.Errorf("Exists error = %v, want ErrCacheDisabled", err)
	}
	if err := c.Health(context.Background()); err != ErrCacheDisabled {
		t.Errorf("Health error = %v, want ErrCacheDisabled", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close error = %v, want nil", err)
	}
}

func TestCommentKey(t *testing.T) {
	if got := CommentKey(42); got != "comment:42" {
		t.Errorf("CommentKey(42) = %q, want comment:42", got)
	}
}
