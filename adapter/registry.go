package adapter

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/viant/typology"
)

// ErrRegistryFrozen is returned when registering into a built registry
var ErrRegistryFrozen = errors.New("adapter registry is frozen")

// Registry maps exact type descriptors to adapter entries.
// Register is meant for a single threaded build phase, once frozen the registry is safe for concurrent lookups.
type Registry struct {
	entries map[string]*Entry
	frozen  bool
}

// Register registers entry under key, non nil slots overwrite slots registered earlier under the same key.
// It returns true when an earlier registration was overwritten.
func (r *Registry) Register(key *typology.Type, entry *Entry) (bool, error) {
	if r.frozen {
		return false, errors.Wrapf(ErrRegistryFrozen, "register %v", key)
	}
	if key == nil || entry == nil {
		return false, errors.Wrapf(typology.ErrInvalidType, "register: key and entry are required")
	}
	if key.IsVariable() {
		return false, errors.Wrapf(typology.ErrInvalidType, "register: %v is a type variable", key)
	}
	k := key.Key()
	if prev, ok := r.entries[k]; ok {
		overwritten := (entry.Serializer != nil && prev.Serializer != nil) ||
			(entry.Deserializer != nil && prev.Deserializer != nil) ||
			(entry.InstanceFactory != nil && prev.InstanceFactory != nil)
		prev.merge(entry)
		return overwritten, nil
	}
	stored := &Entry{Key: key}
	stored.merge(entry)
	r.entries[k] = stored
	return false, nil
}

// Lookup returns entry registered for exactly the same type descriptor
func (r *Registry) Lookup(key *typology.Type) (*Entry, bool) {
	if key == nil {
		return nil, false
	}
	entry, ok := r.entries[key.Key()]
	return entry, ok
}

// Serializer returns serializer registered for key
func (r *Registry) Serializer(key *typology.Type) (Serializer, bool) {
	entry, ok := r.Lookup(key)
	if !ok || entry.Serializer == nil {
		return nil, false
	}
	return entry.Serializer, true
}

// Deserializer returns deserializer registered for key
func (r *Registry) Deserializer(key *typology.Type) (Deserializer, bool) {
	entry, ok := r.Lookup(key)
	if !ok || entry.Deserializer == nil {
		return nil, false
	}
	return entry.Deserializer, true
}

// InstanceFactory returns instance factory registered for key
func (r *Registry) InstanceFactory(key *typology.Type) (InstanceFactory, bool) {
	entry, ok := r.Lookup(key)
	if !ok || entry.InstanceFactory == nil {
		return nil, false
	}
	return entry.InstanceFactory, true
}

// Keys returns sorted registered keys
func (r *Registry) Keys() []string {
	ret := lo.Keys(r.entries)
	sort.Strings(ret)
	return ret
}

// Len returns number of registered keys
func (r *Registry) Len() int {
	return len(r.entries)
}

// Freeze disables further registration
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen returns true if registry is frozen
func (r *Registry) Frozen() bool {
	return r.frozen
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: map[string]*Entry{}}
}
