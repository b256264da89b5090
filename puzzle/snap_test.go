package puzzle

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"
)

var twoByTwo = GridSize{X: 2, Y: 2}

func TestSnapTwoPieces(t *testing.T) {
	s := newTestState(t, twoByTwo)
	d := NewDragController(s)

	// t-0-0 sits at 10000 and t-1-0 at 20000; land a few pixels off.
	rel := dragBy(t, d, s.Element("0-0"), 10008, 5)
	if !rel.Merged || rel.Merge.Kind != MergePieces {
		t.Fatalf("release = %+v, want a pieces merge", rel)
	}
	g := rel.Merge.Group
	if g.Len() != 2 {
		t.Fatalf("group has %d members, want 2", g.Len())
	}
	if diff := cmp.Diff([]string{"t-0-1", "t-1-1"}, g.NeighborIDs()); diff != "" {
		t.Fatalf("group neighbours (-want +got):\n%s", diff)
	}
	if x, y := Translation(g.Local()); x != 20000 || y != 0 {
		t.Fatalf("group placed at (%v, %v), want the neighbour's offset", x, y)
	}
	for _, p := range g.Members() {
		if !p.Local().IsIdentity() || p.Draggable() || p.Shadow() {
			t.Fatalf("member %s kept its own state", p.ID())
		}
	}
	if rel.Resolved || s.Resolved {
		t.Fatal("two of four pieces must not resolve")
	}
	if got := s.Elements().Len(); got != s.Components() || got != 3 {
		t.Fatalf("elements layer has %d nodes, components %d, want 3", got, s.Components())
	}
	assertPartition(t, s)
}

func TestSnapOutsideTolerance(t *testing.T) {
	cases := []struct {
		name   string
		dx, dy float64
	}{
		{"x", 10021, 0},
		{"y", 10000, -21},
		{"far", 3, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestState(t, twoByTwo)
			rel := dragBy(t, NewDragController(s), s.Element("0-0"), c.dx, c.dy)
			if rel.Merged {
				t.Fatalf("unexpected merge %+v", rel.Merge)
			}
			if len(s.Groups()) != 0 || s.Components() != 4 {
				t.Fatalf("groups = %d components = %d", len(s.Groups()), s.Components())
			}
		})
	}
}

func TestSnapFirstMatchWins(t *testing.T) {
	s := newTestState(t, twoByTwo)
	s.Element("0-1").SetLocal(gg.Translate(5000, 0))
	s.Element("1-0").SetLocal(gg.Translate(5000, 0))

	rel := dragOnto(t, NewDragController(s), s.Element("0-0"), s.Element("0-1"))
	if !rel.Merged || rel.Merge.Neighbor.ID() != "t-0-1" {
		t.Fatalf("merged with %+v, want t-0-1", rel.Merge.Neighbor)
	}
	if rel.Merge.Group.Len() != 2 || s.Element("1-0").Group() != nil {
		t.Fatal("more than one merge happened in a single release")
	}
	assertPartition(t, s)
}

func TestSnapMergeKinds(t *testing.T) {
	t.Run("group_into_group", func(t *testing.T) {
		s := newTestState(t, twoByTwo)
		d := NewDragController(s)
		g1 := dragOnto(t, d, s.Element("0-0"), s.Element("1-0")).Merge.Group
		g2 := dragOnto(t, d, s.Element("0-1"), s.Element("1-1")).Merge.Group
		if g1 == nil || g2 == nil || g1 == g2 {
			t.Fatalf("setup produced groups %v and %v", g1, g2)
		}

		rel := dragOnto(t, d, g1, s.Element("0-1"))
		if rel.Merge.Kind != MergeGroupIntoGroup || rel.Merge.Group != g2 {
			t.Fatalf("release = %+v, want group_into_group into %s", rel.Merge, g2.ID())
		}
		if g2.Len() != 4 || len(s.Groups()) != 1 {
			t.Fatalf("target has %d members, %d groups live", g2.Len(), len(s.Groups()))
		}
		if len(g2.NeighborIDs()) != 0 {
			t.Fatalf("complete group still lists neighbours %v", g2.NeighborIDs())
		}
		if !rel.Resolved {
			t.Fatal("last merge should resolve")
		}
		assertPartition(t, s)
	})

	t.Run("group_with_piece_then_piece_into_group", func(t *testing.T) {
		s := newTestState(t, twoByTwo)
		d := NewDragController(s)
		g := dragOnto(t, d, s.Element("0-0"), s.Element("1-0")).Merge.Group

		rel := dragOnto(t, d, g, s.Element("0-1"))
		if rel.Merge.Kind != MergeGroupWithPiece || rel.Merge.Group != g {
			t.Fatalf("release = %+v, want group_with_piece", rel.Merge)
		}
		if x, _ := Translation(g.Local()); x != 30000 {
			t.Fatalf("group moved to %v, want the piece's offset", x)
		}
		if diff := cmp.Diff([]string{"t-1-1"}, g.NeighborIDs()); diff != "" {
			t.Fatalf("neighbours (-want +got):\n%s", diff)
		}

		rel = dragOnto(t, d, s.Element("1-1"), s.Element("0-1"))
		if rel.Merge.Kind != MergePieceIntoGroup || rel.Merge.Group != g {
			t.Fatalf("release = %+v, want piece_into_group", rel.Merge)
		}
		if g.Len() != 4 || !rel.Resolved {
			t.Fatalf("group has %d members, resolved %v", g.Len(), rel.Resolved)
		}
		assertPartition(t, s)
	})
}

func TestMergeKindString(t *testing.T) {
	want := map[MergeKind]string{
		MergeNone:           "none",
		MergeGroupIntoGroup: "group_into_group",
		MergeGroupWithPiece: "group_with_piece",
		MergePieceIntoGroup: "piece_into_group",
		MergePieces:         "pieces",
	}
	for k, s := range want {
		if k.String() != s {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), s)
		}
	}
}

func TestSnapToleranceIgnoresView(t *testing.T) {
	// Tolerance is 20 paper units; at half scale a 30 unit gap is only 15 on
	// screen and must still stay apart.
	cases := []struct {
		name   string
		dx     float64
		merged bool
	}{
		{"gap_30", 4985, false},
		{"gap_10", 4995, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestState(t, twoByTwo)
			s.Elements().SetTransform(gg.Scale(0.5, 0.5))
			s.Move().SetTransform(gg.Scale(0.5, 0.5))

			rel := dragBy(t, NewDragController(s), s.Element("0-0"), c.dx, 0)
			if rel.Merged != c.merged {
				t.Fatalf("merged = %v, want %v", rel.Merged, c.merged)
			}
		})
	}
}
