package registry

import (
	"reflect"
	"testing"
)

func TestMergeCoreAndProjectOverridesByName(t *testing.T) {
	core := Registry{
		Version: 1,
		Classes: []ClassDesc{{Name: "align-left", ExclusiveGroup: "align", Label: "Left"}},
		Rules:   DefaultRules(),
	}
	project := Registry{
		Classes: []ClassDesc{
			{Name: "align-left", ExclusiveGroup: "align", Label: "Project Left"},
			{Name: "highlight", Group: "fill"},
		},
	}

	merged := MergeCoreAndProject(core, project)

	if merged.Version != 1 {
		t.Fatalf("Version = %d, want 1 (project Version is zero, should pass through)", merged.Version)
	}
	got, ok := merged.ClassByName("align-left")
	if !ok || got.Label != "Project Left" {
		t.Fatalf("align-left = %+v, ok=%v, want project override", got, ok)
	}
	if _, ok := merged.ClassByName("highlight"); !ok {
		t.Fatal("expected highlight class to be present")
	}
	if merged.Rules != DefaultRules() {
		t.Fatalf("Rules = %+v, want core Rules to pass through since project.Rules is zero", merged.Rules)
	}
}

func TestMergeCoreAndProjectPreservesFirstSeenOrder(t *testing.T) {
	core := Registry{Classes: []ClassDesc{{Name: "a"}, {Name: "b"}}}
	project := Registry{Classes: []ClassDesc{{Name: "b"}, {Name: "c"}}}

	merged := MergeCoreAndProject(core, project)

	var names []string
	for _, c := range merged.Classes {
		names = append(names, c.Name)
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("class order = %v, want %v", names, want)
	}
}

func TestMergeCoreAndProjectReplacesRulesWhenProjectSetsThem(t *testing.T) {
	core := Registry{Rules: DefaultRules()}
	project := Registry{Rules: Rules{ImportPolicy: "lenient", ClassExclusivity: false}}

	merged := MergeCoreAndProject(core, project)

	if merged.Rules != project.Rules {
		t.Fatalf("Rules = %+v, want project.Rules %+v", merged.Rules, project.Rules)
	}
}

func TestNormalizeClassesDropsUnknown(t *testing.T) {
	reg := DefaultCoreRegistry()
	got := NormalizeClasses([]string{"align-left", "not-a-class", "text-bold"}, reg)
	want := []string{"text-bold", "align-left"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeClasses = %v, want %v", got, want)
	}
}

func TestNormalizeClassesKeepsLastInExclusiveGroup(t *testing.T) {
	reg := DefaultCoreRegistry()
	got := NormalizeClasses([]string{"align-left", "align-right", "align-center"}, reg)
	want := []string{"align-center"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeClasses = %v, want %v", got, want)
	}
}

func TestNormalizeClassesIsIdempotent(t *testing.T) {
	reg := DefaultCoreRegistry()
	once := NormalizeClasses([]string{"text-bold", "align-left", "align-right"}, reg)
	twice := NormalizeClasses(once, reg)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("NormalizeClasses not idempotent: once=%v twice=%v", once, twice)
	}
}

func TestNormalizeClassesOrdersExclusiveSurvivorsByLastAppearance(t *testing.T) {
	reg := Registry{Classes: []ClassDesc{
		{Name: "a", ExclusiveGroup: "g1"},
		{Name: "b", ExclusiveGroup: "g2"},
	}}
	got := NormalizeClasses([]string{"b", "a"}, reg)
	want := []string{"b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeClasses = %v, want %v", got, want)
	}
}
