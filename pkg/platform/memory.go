package platform

import (
	"context"
	"slices"
)

// MemorySpec describes a memory resource to create or the fields to update.
// Zero fields are left at their default (create) or unchanged (update).
type MemorySpec struct {
	Name          string   `json:"name"`
	Strategies    []string `json:"strategies"`
	RetentionDays int      `json:"retention_days"`
	AutoSummary   *bool    `json:"auto_summary,omitempty"`
}

// Memory manages memory resources.
type Memory struct{ c *Client }

// Create registers a new memory resource.
func (m *Memory) Create(ctx context.Context, spec MemorySpec) (Response[MemoryResource], error) {
	if spec.RetentionDays < 0 {
		return Response[MemoryResource]{}, invalid("retention must not be negative")
	}
	return invoke(ctx, m.c, "memory.create", func() (MemoryResource, error) {
		res := MemoryResource{
			ID:               m.c.newID("mem"),
			Name:             "New Memory",
			Strategies:       []string{"shortTerm"},
			Retention:        RetentionPolicy{Days: 30},
			Status:           StatusActive,
			AssociatedAgents: []string{},
			CreatedAt:        m.c.now(),
		}
		applyMemorySpec(&res, spec)

		m.c.mu.Lock()
		m.c.memories = append(m.c.memories, res)
		m.c.mu.Unlock()
		return res, nil
	})
}

// List returns every memory resource.
func (m *Memory) List(ctx context.Context) (Response[[]MemoryResource], error) {
	return invoke(ctx, m.c, "memory.list", func() ([]MemoryResource, error) {
		m.c.mu.RLock()
		defer m.c.mu.RUnlock()
		return slices.Clone(m.c.memories), nil
	})
}

// Update applies spec to the memory resource with id.
func (m *Memory) Update(ctx context.Context, id string, spec MemorySpec) (Response[MemoryResource], error) {
	if spec.RetentionDays < 0 {
		return Response[MemoryResource]{}, invalid("retention must not be negative")
	}
	if _, ok := m.c.memoryIndex(id); !ok {
		return Response[MemoryResource]{}, &NotFoundError{Kind: "memory", ID: id}
	}
	return invoke(ctx, m.c, "memory.update", func() (MemoryResource, error) {
		m.c.mu.Lock()
		defer m.c.mu.Unlock()
		i := slices.IndexFunc(m.c.memories, func(r MemoryResource) bool { return r.ID == id })
		if i < 0 {
			return MemoryResource{}, &NotFoundError{Kind: "memory", ID: id}
		}
		applyMemorySpec(&m.c.memories[i], spec)
		return m.c.memories[i], nil
	})
}

// Delete removes the memory resource with id.
func (m *Memory) Delete(ctx context.Context, id string) (Response[bool], error) {
	if _, ok := m.c.memoryIndex(id); !ok {
		return Response[bool]{}, &NotFoundError{Kind: "memory", ID: id}
	}
	return invoke(ctx, m.c, "memory.delete", func() (bool, error) {
		m.c.mu.Lock()
		defer m.c.mu.Unlock()
		m.c.memories = slices.DeleteFunc(m.c.memories, func(r MemoryResource) bool { return r.ID == id })
		return true, nil
	})
}

func (c *Client) memoryIndex(id string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := slices.IndexFunc(c.memories, func(r MemoryResource) bool { return r.ID == id })
	return i, i >= 0
}

func applyMemorySpec(res *MemoryResource, spec MemorySpec) {
	if spec.Name != "" {
		res.Name = spec.Name
	}
	if len(spec.Strategies) > 0 {
		res.Strategies = slices.Clone(spec.Strategies)
	}
	if spec.RetentionDays > 0 {
		res.Retention.Days = spec.RetentionDays
	}
	if spec.AutoSummary != nil {
		res.Retention.AutoSummary = *spec.AutoSummary
	}
}
