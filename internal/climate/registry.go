package climate

import (
	"sync"

	"heating_scheduler/internal/models"
)

// Registry owns the live entities. Readers get clones; the reconciler writes
// observed state back by entity id so a boost set meanwhile survives.
type Registry struct {
	mu       sync.RWMutex
	entities []Entity
	index    map[string]int
}

func NewRegistry(entities ...Entity) *Registry {
	r := &Registry{index: make(map[string]int, len(entities))}
	for _, e := range entities {
		if _, dup := r.index[e.EntityID()]; dup {
			continue
		}
		r.index[e.EntityID()] = len(r.entities)
		r.entities = append(r.entities, e)
	}
	return r
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

// IDs returns entity ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.entities))
	for i, e := range r.entities {
		ids[i] = e.EntityID()
	}
	return ids
}

// Snapshot clones every entity so I/O can run without holding the lock.
func (r *Registry) Snapshot() []Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entity, len(r.entities))
	for i, e := range r.entities {
		out[i] = e.Clone()
	}
	return out
}

// Get returns a clone of the entity with the given id.
func (r *Registry) Get(entityID string) (Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[entityID]
	if !ok {
		return nil, ErrEntityNotFound
	}
	return r.entities[i].Clone(), nil
}

// WriteBack copies the cached observed state of each snapshot onto the live
// entity with the same id. Boost fields are left alone.
func (r *Registry) WriteBack(snapshots ...Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range snapshots {
		i, ok := r.index[s.EntityID()]
		if !ok {
			continue
		}
		r.entities[i].UpdateCachedState(s.CachedState())
	}
}

// SetBoostAll applies b to every entity and returns how many were touched.
func (r *Registry) SetBoostAll(b models.BoostInfo) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entities {
		e.SetBoost(b)
	}
	return len(r.entities)
}

// Statuses reports cached state and boost for every entity.
func (r *Registry) Statuses() []models.EntityStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.EntityStatus, len(r.entities))
	for i, e := range r.entities {
		out[i] = models.EntityStatus{
			EntityID: e.EntityID(),
			Climate:  e.CachedState(),
			Boost:    e.Boost(),
		}
	}
	return out
}
