package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

func (c *Client) Registries(ctx context.Context) ([]Registry, error) {
	return query(ctx, c, NewKey(ResourceRegistries), func(ctx context.Context) ([]Registry, error) {
		var registries []Registry
		err := c.do(ctx, http.MethodGet, "/registries", nil, nil, &registries)
		return registries, err
	})
}

func (c *Client) ActiveRegistry(ctx context.Context) (Registry, error) {
	return query(ctx, c, NewKey(ResourceActiveRegistry), func(ctx context.Context) (Registry, error) {
		var registry Registry
		err := c.do(ctx, http.MethodGet, "/registries/active", nil, nil, &registry)
		return registry, err
	})
}

func (c *Client) Registry(ctx context.Context, id int64) (Registry, error) {
	return query(ctx, c, NewKey(ResourceRegistryDetail, id), func(ctx context.Context) (Registry, error) {
		var registry Registry
		err := c.do(ctx, http.MethodGet, "/registries/detail", idParam(id), nil, &registry)
		return registry, err
	})
}

func (c *Client) CreateRegistry(ctx context.Context, in RegistryCreate) (Registry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.URL = strings.TrimSpace(in.URL)
	if in.Name == "" {
		return Registry{}, validationError("registry name is required")
	}
	if in.URL == "" {
		return Registry{}, validationError("registry url is required")
	}
	registry, err := mutate(ctx, c, "createRegistry|"+in.Name, func(ctx context.Context) (Registry, error) {
		var registry Registry
		err := c.do(ctx, http.MethodPost, "/registries", nil, in, &registry)
		return registry, err
	})
	if err != nil {
		return Registry{}, err
	}
	c.Invalidate(NewKey(ResourceRegistries))
	return registry, nil
}

func (c *Client) UpdateRegistry(ctx context.Context, id int64, in RegistryUpdate) (Registry, error) {
	registry, err := mutate(ctx, c, registryMutationKey("updateRegistry", id), func(ctx context.Context) (Registry, error) {
		var registry Registry
		err := c.do(ctx, http.MethodPut, "/registries", idParam(id), in, &registry)
		return registry, err
	})
	if err != nil {
		return Registry{}, err
	}
	c.Invalidate(NewKey(ResourceRegistries), NewKey(ResourceRegistryDetail, id), NewKey(ResourceActiveRegistry))
	return registry, nil
}

func (c *Client) DeleteRegistry(ctx context.Context, id int64) error {
	_, err := mutate(ctx, c, registryMutationKey("deleteRegistry", id), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.do(ctx, http.MethodDelete, "/registries", idParam(id), nil, nil)
	})
	if err != nil {
		return err
	}
	c.Invalidate(NewKey(ResourceRegistries), NewKey(ResourceRegistryDetail, id), NewKey(ResourceActiveRegistry))
	return nil
}

// ActivateRegistry makes id the active registry. Callers are expected to
// reset every registry-scoped cache afterwards.
func (c *Client) ActivateRegistry(ctx context.Context, id int64) (Registry, error) {
	return mutate(ctx, c, registryMutationKey("activateRegistry", id), func(ctx context.Context) (Registry, error) {
		var registry Registry
		err := c.do(ctx, http.MethodPost, "/registries/activate", idParam(id), nil, &registry)
		return registry, err
	})
}

// TestRegistry checks connectivity of a stored registry. A failed check is
// reported in the result, not as an error.
func (c *Client) TestRegistry(ctx context.Context, id int64) (ConnectionResult, error) {
	return mutate(ctx, c, registryMutationKey("testRegistry", id), func(ctx context.Context) (ConnectionResult, error) {
		var result ConnectionResult
		err := c.do(ctx, http.MethodGet, "/registries/test", idParam(id), nil, &result)
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Kind == KindValidation && gjson.GetBytes(apiErr.body, "connected").Exists() {
			return ConnectionResult{
				Connected: gjson.GetBytes(apiErr.body, "connected").Bool(),
				Error:     apiErr.Message,
			}, nil
		}
		return result, err
	})
}

func registryMutationKey(action string, id int64) string {
	return action + "|" + strconv.FormatInt(id, 10)
}

func idParam(id int64) url.Values {
	return url.Values{"id": []string{strconv.FormatInt(id, 10)}}
}
