package api

import (
	"testing"
	"time"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{NewKey(ResourceRegistries), "registries"},
		{NewKey(ResourceRepositories, 1, 20, ""), "repositories|1|20|"},
		{NewKey(ResourceImageInfo, "library/nginx", "1.25"), "imageInfo|library%2Fnginx|1.25"},
		{NewKey(ResourceTags, "a|b", 1), "tags|a%7Cb|1"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestKeyCovers(t *testing.T) {
	tags := NewKey(ResourceTags, "nginx", 1, 20, "")
	tests := []struct {
		prefix Key
		want   bool
	}{
		{NewKey(ResourceTags), true},
		{NewKey(ResourceTags, "nginx"), true},
		{tags, true},
		{NewKey(ResourceTags, "redis"), false},
		{NewKey(ResourceRepositories), false},
		{NewKey(ResourceTags, "nginx", 1, 20, "", "extra"), false},
	}
	for _, tt := range tests {
		if got := tt.prefix.Covers(tags); got != tt.want {
			t.Fatalf("%s covers %s: expected %v, got %v", tt.prefix, tags, tt.want, got)
		}
	}
}

func TestCacheStaleness(t *testing.T) {
	now := time.Unix(1000, 0)
	cache := NewCache(func() time.Time { return now })
	key := NewKey(ResourceCatalog)

	cache.Set(cache.Generation(key), key, "value")
	if got, ok := cache.Get(key, 30*time.Second); !ok || got != "value" {
		t.Fatalf("expected fresh value, got %v %v", got, ok)
	}
	now = now.Add(30 * time.Second)
	if _, ok := cache.Get(key, 30*time.Second); ok {
		t.Fatalf("expected entry to be stale at the window boundary")
	}
	if _, ok := cache.Get(key, 0); ok {
		t.Fatalf("expected zero window to never serve from cache")
	}
}

func TestCacheInvalidate(t *testing.T) {
	cache := NewCache(nil)
	for i, key := range []Key{
		NewKey(ResourceTags, "nginx", 1, 20, ""),
		NewKey(ResourceTags, "nginx", 2, 20, ""),
		NewKey(ResourceTags, "redis", 1, 20, ""),
		NewKey(ResourceRepositories, 1, 20, ""),
	} {
		cache.Set(cache.Generation(key), key, i)
	}

	if removed := cache.Invalidate(NewKey(ResourceTags, "nginx"), NewKey(ResourceRepositories)); removed != 3 {
		t.Fatalf("expected 3 removed entries, got %d", removed)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected 1 remaining entry, got %d", cache.Len())
	}
	if _, ok := cache.Get(NewKey(ResourceTags, "redis", 1, 20, ""), time.Minute); !ok {
		t.Fatalf("expected unrelated entry to survive")
	}
}

func TestCacheDropsWritesFromOlderGeneration(t *testing.T) {
	cache := NewCache(nil)
	key := NewKey(ResourceCatalog)
	gen := cache.Generation(key)

	cache.Reset()
	if cache.Set(gen, key, "stale") {
		t.Fatalf("expected write from before the reset to be dropped")
	}
	if cache.Len() != 0 {
		t.Fatalf("expected empty cache, got %d entries", cache.Len())
	}
	if !cache.Set(cache.Generation(key), key, "fresh") {
		t.Fatalf("expected current generation write to be stored")
	}
}

func TestCacheInvalidationOnlyDropsWritesOfTouchedResource(t *testing.T) {
	cache := NewCache(nil)
	info := NewKey(ResourceImageInfo, "nginx", "latest")
	tags := NewKey(ResourceTags, "nginx", 1, 20, "")
	infoGen := cache.Generation(info)
	tagsGen := cache.Generation(tags)

	cache.Invalidate(NewKey(ResourceRegistries), NewKey(ResourceTags, "nginx"))
	if !cache.Set(infoGen, info, "info") {
		t.Fatalf("expected write of an untouched resource to be stored")
	}
	if cache.Set(tagsGen, tags, "tags") {
		t.Fatalf("expected write of an invalidated resource to be dropped")
	}
	if !cache.Set(cache.Generation(tags), tags, "tags") {
		t.Fatalf("expected write after the invalidation to be stored")
	}
}

func TestPolicies(t *testing.T) {
	policies := DefaultPolicies()
	tests := []struct {
		resource Resource
		want     Policy
	}{
		{ResourceRegistries, Policy{StaleTime: 30 * time.Second, Retry: 1}},
		{ResourceTags, Policy{StaleTime: 30 * time.Second, Retry: 1}},
		{ResourceRepositories, Policy{StaleTime: 30 * time.Second, Retry: 0}},
		{ResourceImageInfo, Policy{StaleTime: 60 * time.Second, Retry: 1}},
	}
	for _, tt := range tests {
		if got := policies.For(tt.resource); got != tt.want {
			t.Fatalf("%s: expected %+v, got %+v", tt.resource, tt.want, got)
		}
	}
}
