package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T, prefix string) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, prefix), mr
}

type cachedUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestCacheHelper_SetGet(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestHelper(t, "user:")

	want := cachedUser{ID: 7, Name: "alice"}
	if err := helper.Set(ctx, "id:7", want, time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	var got cachedUser
	if err := helper.Get(ctx, "id:7", &got); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestCacheHelper_GetMiss(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestHelper(t, "user:")

	var got cachedUser
	if err := helper.Get(ctx, "id:404", &got); err != ErrCacheNotFound {
		t.Errorf("Expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestHelper(t, "user:")

	if err := helper.Set(ctx, "id:1", cachedUser{ID: 1}, time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := helper.Set(ctx, "id:2", cachedUser{ID: 2}, time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	if err := helper.Delete(ctx, "id:1", "id:2"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	var got cachedUser
	if err := helper.Get(ctx, "id:1", &got); err != ErrCacheNotFound {
		t.Errorf("Deleted key should miss, got %v", err)
	}
}

func TestCacheHelper_Exists(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestHelper(t, "exists:")

	ok, err := helper.Exists(ctx, "user:1:email")
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if ok {
		t.Error("Missing key should not exist")
	}

	if err := helper.Set(ctx, "user:1:email", true, time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	ok, err = helper.Exists(ctx, "user:1:email")
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if !ok {
		t.Error("Stored key should exist")
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestHelper(t, "membership:")

	keys := []string{"user:1:instructed", "user:1:assisted", "user:2:instructed"}
	for _, key := range keys {
		if err := helper.Set(ctx, key, []uint{1, 2}, time.Minute); err != nil {
			t.Fatalf("Set returned error: %v", err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "user:1:*"); err != nil {
		t.Fatalf("InvalidatePattern returned error: %v", err)
	}

	var dest []uint
	if err := helper.Get(ctx, "user:1:instructed", &dest); err != ErrCacheNotFound {
		t.Errorf("Invalidated key should miss, got %v", err)
	}
	if err := helper.Get(ctx, "user:2:instructed", &dest); err != nil {
		t.Errorf("Unrelated key should survive, got %v", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestHelper(t, "user:")

	fetches := 0
	fetch := func() (interface{}, error) {
		fetches++
		return cachedUser{ID: 9, Name: "bob"}, nil
	}

	var got cachedUser
	if err := helper.CacheOrExecute(ctx, "id:9", &got, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute returned error: %v", err)
	}
	if got.Name != "bob" {
		t.Errorf("Fetched value = %+v", got)
	}
	if fetches != 1 {
		t.Errorf("Expected 1 fetch, got %d", fetches)
	}

	// Once the value lands in cache, the fetch function is not called again.
	if err := helper.Set(ctx, "id:9", cachedUser{ID: 9, Name: "bob"}, time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	var again cachedUser
	if err := helper.CacheOrExecute(ctx, "id:9", &again, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute returned error: %v", err)
	}
	if fetches != 1 {
		t.Errorf("Cached hit should not fetch again, got %d fetches", fetches)
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	ctx := context.Background()
	helper := NewCacheHelper(nil, "user:")

	if err := helper.Set(ctx, "id:1", cachedUser{ID: 1}, time.Minute); err != nil {
		t.Errorf("Set without client should be a no-op, got %v", err)
	}
	if err := helper.Get(ctx, "id:1", &cachedUser{}); err != ErrCacheNotAvailable {
		t.Errorf("Get without client should return ErrCacheNotAvailable, got %v", err)
	}
	if err := helper.Delete(ctx, "id:1"); err != nil {
		t.Errorf("Delete without client should be a no-op, got %v", err)
	}
	if err := helper.InvalidatePattern(ctx, "*"); err != nil {
		t.Errorf("InvalidatePattern without client should be a no-op, got %v", err)
	}
}

func TestCacheManager(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cm := NewCacheManager(client)

	if err := cm.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck returned error: %v", err)
	}

	if err := cm.Membership.Set(ctx, "user:5:instructed", []uint{1}, time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := cm.InvalidateMembership(ctx, 5); err != nil {
		t.Fatalf("InvalidateMembership returned error: %v", err)
	}

	var dest []uint
	if err := cm.Membership.Get(ctx, "user:5:instructed", &dest); err != ErrCacheNotFound {
		t.Errorf("Invalidated membership key should miss, got %v", err)
	}

	t.Run("NilClient", func(t *testing.T) {
		nilCM := NewCacheManager(nil)
		if err := nilCM.HealthCheck(ctx); err != ErrCacheNotAvailable {
			t.Errorf("HealthCheck without client should return ErrCacheNotAvailable, got %v", err)
		}
	})
}
