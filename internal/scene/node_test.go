package scene

import (
	"testing"

	"github.com/Faultbox/mars-globe/pkg/math"
)

func TestAddReparents(t *testing.T) {
	s := New()
	g := NewGroup("pivot")
	m := NewMesh("sphere", &Geometry{}, NewMaterial("m", "", ""))

	s.Add(m)
	g.Add(m)

	if len(s.Children()) != 0 {
		t.Errorf("scene children = %d, want 0 after reparent", len(s.Children()))
	}
	if m.Parent() != &g.Node {
		t.Error("mesh parent should be the group")
	}
}

func TestRemove(t *testing.T) {
	s := New()
	m := NewPoints("stars", &Geometry{}, &PointsMaterial{})
	s.Add(m)

	if !s.Remove(m) {
		t.Fatal("Remove returned false for attached child")
	}
	if m.Parent() != nil {
		t.Error("removed node should have no parent")
	}
	if s.Remove(m) {
		t.Error("second Remove should report false")
	}
}

func TestWorldMatrixIncludesParent(t *testing.T) {
	s := New()
	g := NewGroup("pivot")
	g.Position = math.Vec3{X: 5}
	m := NewMesh("sphere", &Geometry{}, NewMaterial("m", "", ""))
	m.Scale = math.Splat(2)
	g.Add(m)
	s.Add(g)

	got := m.WorldMatrix().TransformPoint(math.Vec3{X: 1})
	want := math.Vec3{X: 7}
	if got.Distance(want) > 1e-5 {
		t.Errorf("world transform = %v, want %v", got, want)
	}
}

func TestTraverseSkipsHidden(t *testing.T) {
	s := New()
	visible := NewGroup("visible")
	hidden := NewGroup("hidden")
	hidden.Visible = false
	hidden.Add(NewGroup("child"))
	s.Add(visible)
	s.Add(hidden)

	var names []string
	Traverse(s, func(obj Object, _ math.Mat4) {
		names = append(names, obj.Base().Name)
	})

	want := []string{"scene", "visible"}
	if len(names) != len(want) {
		t.Fatalf("visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("visit %d = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestGeometryVertexCount(t *testing.T) {
	g := &Geometry{Positions: make([]float32, 30)}
	if g.VertexCount() != 10 {
		t.Errorf("VertexCount() = %d, want 10", g.VertexCount())
	}
}

func TestMaterialsCollectsEveryMesh(t *testing.T) {
	s := New()
	shared := NewMaterial("shared", "", "")
	other := NewMaterial("other", "", "")

	a := NewMesh("a", &Geometry{}, shared)
	b := NewMesh("b", &Geometry{}, shared)
	hidden := NewGroup("hidden")
	hidden.Visible = false
	c := NewMesh("c", &Geometry{}, other)
	hidden.Add(c)
	s.Add(a)
	s.Add(NewPoints("stars", &Geometry{}, &PointsMaterial{}))
	s.Add(b)
	s.Add(hidden)

	got := Materials(s)
	if len(got) != 2 {
		t.Fatalf("Materials() returned %d materials, want 2", len(got))
	}
	if got[0] != shared || got[1] != other {
		t.Errorf("Materials() = [%s %s], want [shared other]", got[0].Name, got[1].Name)
	}
}
