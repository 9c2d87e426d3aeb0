package layout

import "strings"

// MaxLayers bounds a layer list, sentinel slot included.
const MaxLayers = 25

// Registry owns every layout for the lifetime of the process. Layouts are
// addressed by ID; pointers returned by Layout stay valid because the
// backing slice is never resized after construction.
type Registry struct {
	layouts []Layout
	byName  map[string]ID
}

// NewRegistry copies the supplied layouts, checks their sentinels and
// resolves key targets by name.
func NewRegistry(layouts []Layout) (*Registry, error) {
	r := &Registry{
		layouts: make([]Layout, len(layouts)),
		byName:  make(map[string]ID, len(layouts)),
	}
	for i, l := range layouts {
		keys := make([]Key, len(l.Keys))
		copy(keys, l.Keys)
		l.Keys = keys
		if err := checkSentinel(&l); err != nil {
			return nil, err
		}
		r.layouts[i] = l
		if l.Name != "" {
			r.byName[l.Name] = ID(i)
		}
	}
	for i := range r.layouts {
		l := &r.layouts[i]
		for j := range l.Keys {
			k := &l.Keys[j]
			k.Target = NoLayout
			if k.TargetName == "" {
				continue
			}
			id, ok := r.byName[k.TargetName]
			if !ok {
				return nil, configErrorf(ExitLayers, ErrNoSuchLayer, "%s (target of key %q in %s)", k.TargetName, k.Label, l.Name)
			}
			k.Target = id
		}
	}
	return r, nil
}

func checkSentinel(l *Layout) error {
	for i := range l.Keys {
		if l.Keys[i].Kind == Last {
			if i != len(l.Keys)-1 {
				return configErrorf(ExitLayers, ErrMalformed, "layout %s has keys after its sentinel", l.Name)
			}
			return nil
		}
	}
	return configErrorf(ExitLayers, ErrMalformed, "layout %s has no sentinel", l.Name)
}

// Len returns the number of layouts.
func (r *Registry) Len() int {
	return len(r.layouts)
}

// Layout returns the layout for id, or nil when out of range.
func (r *Registry) Layout(id ID) *Layout {
	if id < 0 || int(id) >= len(r.layouts) {
		return nil
	}
	return &r.layouts[id]
}

// Lookup resolves a layout name.
func (r *Registry) Lookup(name string) (ID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// ResolveLayers turns a comma separated list of layout names into IDs.
func (r *Registry) ResolveLayers(list string) ([]ID, error) {
	var layers []ID
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if len(layers)+1 == MaxLayers {
			return nil, configErrorf(ExitLayers, ErrTooManyLayers, "limit is %d", MaxLayers-1)
		}
		id, ok := r.byName[name]
		if !ok {
			return nil, configErrorf(ExitLayers, ErrNoSuchLayer, "%s", name)
		}
		layers = append(layers, id)
	}
	if len(layers) == 0 {
		return nil, &ConfigError{Code: ExitLayers, Err: ErrNoLayers}
	}
	return layers, nil
}

// ValidateKeymaps checks that every layout references a keymap known to the
// device.
func (r *Registry) ValidateKeymaps(known func(name string) bool) error {
	for i := range r.layouts {
		l := &r.layouts[i]
		if !known(l.Keymap) {
			return configErrorf(ExitKeymap, ErrNoSuchKeymap, "%q (layout %s)", l.Keymap, l.Name)
		}
	}
	return nil
}

// Arrange lays out every layout for the given surface region.
func (r *Registry) Arrange(width, height, yOffset uint32) {
	for i := range r.layouts {
		r.layouts[i].Arrange(width, height, yOffset)
	}
}
