package api

import (
	"context"
	_ "crypto/sha256"
	"net/http"
	"net/url"
	"strings"

	"github.com/opencontainers/go-digest"
)

func (c *Client) Catalog(ctx context.Context) (Catalog, error) {
	return query(ctx, c, NewKey(ResourceCatalog), func(ctx context.Context) (Catalog, error) {
		var catalog Catalog
		err := c.do(ctx, http.MethodGet, "/images/catalog", nil, nil, &catalog)
		return catalog, err
	})
}

func (c *Client) Repositories(ctx context.Context, q PageQuery) (Page[[]RepositoryInfo], error) {
	q = q.Normalize()
	key := NewKey(ResourceRepositories, q.Page, q.PageSize, q.Search)
	return query(ctx, c, key, func(ctx context.Context) (Page[[]RepositoryInfo], error) {
		var page Page[[]RepositoryInfo]
		err := c.do(ctx, http.MethodGet, "/images/repositories", q.values(), nil, &page)
		return page, err
	})
}

// Tags lists one page of the tags of repository; q.Search filters tag names.
func (c *Client) Tags(ctx context.Context, repository string, q PageQuery) (Page[TagList], error) {
	repository = strings.TrimSpace(repository)
	if repository == "" {
		return Page[TagList]{}, validationError("repository is required")
	}
	q = q.Normalize()
	key := NewKey(ResourceTags, repository, q.Page, q.PageSize, q.Search)
	return query(ctx, c, key, func(ctx context.Context) (Page[TagList], error) {
		params := q.values()
		params.Set("repo", repository)
		var page Page[TagList]
		err := c.do(ctx, http.MethodGet, "/images/tags", params, nil, &page)
		return page, err
	})
}

func (c *Client) Manifest(ctx context.Context, repository, reference string) (ImageManifest, error) {
	repository, reference, err := imageRef(repository, reference)
	if err != nil {
		return ImageManifest{}, err
	}
	key := NewKey(ResourceManifest, repository, reference)
	return query(ctx, c, key, func(ctx context.Context) (ImageManifest, error) {
		var manifest ImageManifest
		params := url.Values{"repo": []string{repository}, "ref": []string{reference}}
		err := c.do(ctx, http.MethodGet, "/images/manifest", params, nil, &manifest)
		return manifest, err
	})
}

func (c *Client) ImageInfo(ctx context.Context, repository, tag string) (ImageInfo, error) {
	repository, tag, err := imageRef(repository, tag)
	if err != nil {
		return ImageInfo{}, err
	}
	key := NewKey(ResourceImageInfo, repository, tag)
	return query(ctx, c, key, func(ctx context.Context) (ImageInfo, error) {
		var info ImageInfo
		params := url.Values{"repo": []string{repository}, "tag": []string{tag}}
		err := c.do(ctx, http.MethodGet, "/images/info", params, nil, &info)
		return info, err
	})
}

// DeleteImage deletes reference, a tag or a digest, from repository.
func (c *Client) DeleteImage(ctx context.Context, repository, reference string) error {
	repository, reference, err := imageRef(repository, reference)
	if err != nil {
		return err
	}
	_, err = mutate(ctx, c, "deleteImage|"+repository+"|"+reference, func(ctx context.Context) (struct{}, error) {
		params := url.Values{"repo": []string{repository}, "ref": []string{reference}}
		return struct{}{}, c.do(ctx, http.MethodDelete, "/images/delete", params, nil, nil)
	})
	if err != nil {
		return err
	}

	keys := []Key{
		NewKey(ResourceRepositories),
		NewKey(ResourceCatalog),
		NewKey(ResourceTags, repository),
	}
	if IsDigest(reference) {
		// Every tag of the repository may point at the deleted manifest.
		keys = append(keys, NewKey(ResourceManifest, repository), NewKey(ResourceImageInfo, repository))
	} else {
		keys = append(keys, NewKey(ResourceManifest, repository, reference), NewKey(ResourceImageInfo, repository, reference))
	}
	c.Invalidate(keys...)
	return nil
}

// IsDigest reports whether reference is a content digest rather than a tag.
func IsDigest(reference string) bool {
	_, err := digest.Parse(reference)
	return err == nil
}

func imageRef(repository, reference string) (string, string, error) {
	repository = strings.TrimSpace(repository)
	reference = strings.TrimSpace(reference)
	if repository == "" {
		return "", "", validationError("repository is required")
	}
	if reference == "" {
		return "", "", validationError("reference is required")
	}
	return repository, reference, nil
}
