package browse

import "sync"

// Navigator owns the browse location together with the paging state of the
// repository and tag listings. Tag paging always belongs to the current
// repository and is reset whenever the repository changes.
type Navigator struct {
	mu       sync.RWMutex
	loc      Location
	repos    PageState
	tags     PageState
	pageSize int
}

// NewNavigator starts at the root. Listings start with pageSize rows, or
// DefaultPageSize when pageSize is not one of PageSizes.
func NewNavigator(pageSize int) *Navigator {
	if !validPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	n := &Navigator{pageSize: pageSize}
	n.repos = n.initial()
	n.tags = n.initial()
	return n
}

func (n *Navigator) initial() PageState {
	return PageState{Page: 1, PageSize: n.pageSize}
}

func (n *Navigator) Location() Location {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.loc
}

func (n *Navigator) Repositories() PageState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.repos
}

func (n *Navigator) Tags() PageState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.tags
}

// UpdateRepositories applies fn to the repository listing state.
func (n *Navigator) UpdateRepositories(fn func(*PageState)) PageState {
	n.mu.Lock()
	defer n.mu.Unlock()
	fn(&n.repos)
	return n.repos
}

// UpdateTags applies fn to the tag listing state.
func (n *Navigator) UpdateTags(fn func(*PageState)) PageState {
	n.mu.Lock()
	defer n.mu.Unlock()
	fn(&n.tags)
	return n.tags
}

func (n *Navigator) SelectRepository(name string) Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.loc = Location{Repository: name}.normalize()
	n.tags = n.initial()
	return n.loc
}

// SelectTag is a no-op at the root.
func (n *Navigator) SelectTag(tag string) Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.loc.Repository != "" {
		n.loc = Location{Repository: n.loc.Repository, Tag: tag}.normalize()
	}
	return n.loc
}

func (n *Navigator) Back() Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch n.loc.Level() {
	case LevelTag:
		n.loc.Tag = ""
	case LevelRepository:
		n.moveTo(Location{})
	}
	return n.loc
}

// Restore repositions the navigator from an address.
func (n *Navigator) Restore(loc Location) Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.moveTo(loc)
	return n.loc
}

func (n *Navigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.loc = Location{}
	n.repos = n.initial()
	n.tags = n.initial()
}

func (n *Navigator) moveTo(loc Location) {
	loc = loc.normalize()
	if loc.Repository != n.loc.Repository {
		n.tags = n.initial()
	}
	n.loc = loc
}
