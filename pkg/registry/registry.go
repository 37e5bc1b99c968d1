// Package registry holds the static table of error_reporting constants and
// the constants active in each PHP version.
//
// A Registry is immutable once built and safe for concurrent readers.
package registry

// Constant is a named power-of-two flag.
type Constant struct {
	Name        string `yaml:"name" json:"name"`
	Value       Level  `yaml:"value" json:"value"`
	Description string `yaml:"description" json:"description"`
}

// Version describes the constants available in one PHP version range.
type Version struct {
	Key       string   `yaml:"key" json:"key"`
	Label     string   `yaml:"label" json:"label"`
	Constants []string `yaml:"constants" json:"constants"`
	// EAll is the subset of Constants that E_ALL covers in this version.
	EAll []string `yaml:"e_all" json:"e_all"`
}

// Registry maps constant names to values and version keys to their
// constant sets.
type Registry struct {
	constants []Constant
	byName    map[string]int
	versions  []Version
	byKey     map[string]int
	known     Level
}

// New validates the tables and builds a Registry. Declaration order of both
// slices is preserved for every ordered query.
func New(constants []Constant, versions []Version) (*Registry, error) {
	r := &Registry{
		constants: make([]Constant, 0, len(constants)),
		byName:    make(map[string]int, len(constants)),
		versions:  make([]Version, 0, len(versions)),
		byKey:     make(map[string]int, len(versions)),
	}

	for _, c := range constants {
		if !isPowerOfTwo(c.Value) {
			return nil, configError(ErrNotPowerOfTwo, c.Name)
		}
		if _, dup := r.byName[c.Name]; dup {
			return nil, configError(ErrDuplicateName, c.Name)
		}
		if r.known&c.Value != 0 {
			return nil, configError(ErrDuplicateValue, c.Name)
		}
		r.byName[c.Name] = len(r.constants)
		r.constants = append(r.constants, c)
		r.known |= c.Value
	}

	if len(versions) == 0 {
		return nil, configError(ErrEmptyRegistry, "")
	}

	for _, v := range versions {
		if _, dup := r.byKey[v.Key]; dup {
			return nil, configError(ErrDuplicateVersion, v.Key)
		}
		active := make(map[string]bool, len(v.Constants))
		for _, name := range v.Constants {
			if _, ok := r.byName[name]; !ok {
				return nil, configError(ErrUnknownConstant, v.Key+"/"+name)
			}
			active[name] = true
		}
		for _, name := range v.EAll {
			if !active[name] {
				return nil, configError(ErrEAllNotSubset, v.Key+"/"+name)
			}
		}
		r.byKey[v.Key] = len(r.versions)
		r.versions = append(r.versions, v.clone())
	}

	return r, nil
}

// Constants returns every registered constant in declaration order.
func (r *Registry) Constants() []Constant {
	return append([]Constant(nil), r.constants...)
}

// Constant looks up a constant by name.
func (r *Registry) Constant(name string) (Constant, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Constant{}, false
	}
	return r.constants[i], true
}

// Versions returns every version in display order.
func (r *Registry) Versions() []Version {
	out := make([]Version, 0, len(r.versions))
	for _, v := range r.versions {
		out = append(out, v.clone())
	}
	return out
}

// Version looks up a version by key.
func (r *Registry) Version(key string) (Version, error) {
	i, ok := r.byKey[key]
	if !ok {
		return Version{}, configError(ErrUnknownVersion, key)
	}
	return r.versions[i].clone(), nil
}

// DefaultVersion is the first declared version.
func (r *Registry) DefaultVersion() Version {
	return r.versions[0].clone()
}

// ConstantsForVersion returns the constants active in a version, in the
// version's order.
func (r *Registry) ConstantsForVersion(key string) ([]Constant, error) {
	v, err := r.Version(key)
	if err != nil {
		return nil, err
	}
	out := make([]Constant, 0, len(v.Constants))
	for _, name := range v.Constants {
		out = append(out, r.constants[r.byName[name]])
	}
	return out, nil
}

// MaxLevel is the OR of every constant active in a version.
func (r *Registry) MaxLevel(key string) (Level, error) {
	v, err := r.Version(key)
	if err != nil {
		return 0, err
	}
	return r.levelOf(v.Constants), nil
}

// EAllLevel is the OR of the E_ALL subset of a version.
func (r *Registry) EAllLevel(key string) (Level, error) {
	v, err := r.Version(key)
	if err != nil {
		return 0, err
	}
	return r.levelOf(v.EAll), nil
}

// ConstantsSetInLevel names every registered constant whose bit is set in
// level, in registry declaration order.
func (r *Registry) ConstantsSetInLevel(level Level) []string {
	var names []string
	for _, c := range r.constants {
		if level.Has(c.Value) {
			names = append(names, c.Name)
		}
	}
	return names
}

// IsConstantSetInLevel reports whether the named constant is set in level.
// Unknown names are never set.
func (r *Registry) IsConstantSetInLevel(level Level, name string) bool {
	c, ok := r.Constant(name)
	if !ok {
		return false
	}
	return level.Has(c.Value)
}

// IsLevelValid reports whether level is a union of known constant bits only.
func (r *Registry) IsLevelValid(level Level) bool {
	return level.SubmaskOf(r.KnownLevel())
}

// KnownLevel is the OR of every registered constant.
func (r *Registry) KnownLevel() Level {
	return r.known
}

func (v Version) clone() Version {
	v.Constants = append([]string(nil), v.Constants...)
	v.EAll = append([]string(nil), v.EAll...)
	return v
}

func (r *Registry) levelOf(names []string) Level {
	var level Level
	for _, name := range names {
		level |= r.constants[r.byName[name]].Value
	}
	return level
}
