package registry

import "sort"

// AttrType is the value type a data-* attribute descriptor accepts.
type AttrType string

const (
	AttrTypeEnum    AttrType = "enum"
	AttrTypeNumber  AttrType = "number"
	AttrTypeBoolean AttrType = "boolean"
)

// ClassDesc describes one permitted CSS class.
type ClassDesc struct {
	Name           string
	Group          string
	ExclusiveGroup string
	Label          string
	Description    string
}

// AttrDesc describes one permitted data-* attribute.
type AttrDesc struct {
	Name        string
	Type        AttrType
	Values      []string // for AttrTypeEnum
	Min, Max    *float64 // for AttrTypeNumber
	Default     any
	Label       string
	Description string
	QuickToggle bool
}

// Rules carries registry-wide policy switches.
type Rules struct {
	ImportPolicy     string // "strict" is the only policy this package implements
	ClassExclusivity bool
}

// DefaultRules is the spec's default rule set.
func DefaultRules() Rules {
	return Rules{ImportPolicy: "strict", ClassExclusivity: true}
}

// Registry is a versioned, composable descriptor of permitted classes and
// data attributes.
type Registry struct {
	Version        int
	Classes        []ClassDesc
	DataAttributes []AttrDesc
	Rules          Rules
}

// MergeCoreAndProject unions classes and attributes by name; entries in
// project override entries in core with the same name. Rules are merged as
// a whole: if project carries a non-zero Rules value it replaces core's
// wholesale, otherwise core's Rules pass through unchanged.
func MergeCoreAndProject(core, project Registry) Registry {
	classByName := make(map[string]ClassDesc)
	var classOrder []string
	for _, c := range core.Classes {
		if _, ok := classByName[c.Name]; !ok {
			classOrder = append(classOrder, c.Name)
		}
		classByName[c.Name] = c
	}
	for _, c := range project.Classes {
		if _, ok := classByName[c.Name]; !ok {
			classOrder = append(classOrder, c.Name)
		}
		classByName[c.Name] = c
	}

	attrByName := make(map[string]AttrDesc)
	var attrOrder []string
	for _, a := range core.DataAttributes {
		if _, ok := attrByName[a.Name]; !ok {
			attrOrder = append(attrOrder, a.Name)
		}
		attrByName[a.Name] = a
	}
	for _, a := range project.DataAttributes {
		if _, ok := attrByName[a.Name]; !ok {
			attrOrder = append(attrOrder, a.Name)
		}
		attrByName[a.Name] = a
	}

	merged := Registry{
		Version: core.Version,
		Rules:   core.Rules,
	}
	if project.Version != 0 {
		merged.Version = project.Version
	}
	if project.Rules != (Rules{}) {
		merged.Rules = project.Rules
	}

	merged.Classes = make([]ClassDesc, 0, len(classOrder))
	for _, name := range classOrder {
		merged.Classes = append(merged.Classes, classByName[name])
	}
	merged.DataAttributes = make([]AttrDesc, 0, len(attrOrder))
	for _, name := range attrOrder {
		merged.DataAttributes = append(merged.DataAttributes, attrByName[name])
	}
	return merged
}

// ClassByName returns the class descriptor named name, if known.
func (r Registry) ClassByName(name string) (ClassDesc, bool) {
	for _, c := range r.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return ClassDesc{}, false
}

// AttrByName returns the data attribute descriptor named name, if known.
func (r Registry) AttrByName(name string) (AttrDesc, bool) {
	for _, a := range r.DataAttributes {
		if a.Name == name {
			return a, true
		}
	}
	return AttrDesc{}, false
}

// NormalizeClasses drops names unknown to the registry, keeps only the last
// occurrence of each registry exclusiveGroup, and otherwise preserves the
// relative order of input classes. Surviving exclusive entries are appended
// after the non-exclusive ones, ordered by where they last appeared in the
// input. NormalizeClasses is idempotent.
func NormalizeClasses(classes []string, reg Registry) []string {
	var nonExclusive []string
	lastIndexByGroup := make(map[string]int)
	lastNameByGroup := make(map[string]string)

	for i, name := range classes {
		desc, ok := reg.ClassByName(name)
		if !ok {
			continue
		}
		if desc.ExclusiveGroup == "" {
			nonExclusive = append(nonExclusive, name)
			continue
		}
		lastIndexByGroup[desc.ExclusiveGroup] = i
		lastNameByGroup[desc.ExclusiveGroup] = name
	}

	type groupPos struct {
		group string
		index int
	}
	groups := make([]groupPos, 0, len(lastIndexByGroup))
	for g, idx := range lastIndexByGroup {
		groups = append(groups, groupPos{group: g, index: idx})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].index < groups[j].index })

	result := append([]string{}, nonExclusive...)
	for _, g := range groups {
		result = append(result, lastNameByGroup[g.group])
	}
	return result
}
