package api

import "time"

// Resource names a kind of cached read.
type Resource string

const (
	ResourceCurrentUser    Resource = "currentUser"
	ResourceRegistries     Resource = "registries"
	ResourceActiveRegistry Resource = "activeRegistry"
	ResourceRegistryDetail Resource = "registryDetail"
	ResourceCatalog        Resource = "catalog"
	ResourceRepositories   Resource = "repositories"
	ResourceTags           Resource = "tags"
	ResourceManifest       Resource = "manifest"
	ResourceImageInfo      Resource = "imageInfo"
)

// Policy is the freshness and retry behaviour of one resource kind.
type Policy struct {
	StaleTime time.Duration
	Retry     int
}

var DefaultPolicy = Policy{StaleTime: 30 * time.Second, Retry: 1}

type Policies map[Resource]Policy

func DefaultPolicies() Policies {
	return Policies{
		ResourceRepositories: {StaleTime: 30 * time.Second, Retry: 0},
		ResourceImageInfo:    {StaleTime: 60 * time.Second, Retry: 1},
	}
}

// For returns the policy of r, falling back to DefaultPolicy.
func (p Policies) For(r Resource) Policy {
	if policy, ok := p[r]; ok {
		return policy
	}
	return DefaultPolicy
}
