package collection

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stsysd/shapekit/model"
)

// newTestCollection はテスト用のロガーフック付きコレクションを生成します。
func newTestCollection(t *testing.T) (*ShapeCollection, *logtest.Hook) {
	t.Helper()
	l, hook := logtest.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	model.SetLogger(l)
	t.Cleanup(func() { model.SetLogger(nil) })
	c := New(l)
	t.Cleanup(func() { c.Close() })
	return c, hook
}

// seed は4種類の図形を追加します。
func seed(t *testing.T, c *ShapeCollection) []model.Shape {
	t.Helper()
	shapes := []model.Shape{
		model.NewRectangle(model.NewCoordinate(10, 20), 5, 10),
		model.NewSquare(model.NewCoordinate(1, 1), 4),
		model.NewCircle(model.NewCoordinate(10, 10), 5),
		model.NewTriangle(model.NewCoordinate(0, 0), model.NewCoordinate(4, 0), model.NewCoordinate(0, 3)),
	}
	for _, s := range shapes {
		if _, err := c.Add(s); err != nil {
			t.Fatalf("Failed to add shape: %v", err)
		}
	}
	return shapes
}

func kinds(c *ShapeCollection) []model.Kind {
	var out []model.Kind
	for _, e := range c.All() {
		out = append(out, e.Shape.Kind())
	}
	return out
}

func TestAddAndGet(t *testing.T) {
	c, _ := newTestCollection(t)
	shapes := seed(t, c)

	if c.Len() != len(shapes) {
		t.Fatalf("Expected %d shapes, got %d", len(shapes), c.Len())
	}
	for i, want := range shapes {
		got, err := c.Get(i)
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", i, err)
		}
		if got != want {
			t.Errorf("Get(%d) returned a different shape", i)
		}
	}

	want := []model.Kind{model.KindRectangle, model.KindSquare, model.KindCircle, model.KindTriangle}
	if diff := cmp.Diff(want, kinds(c)); diff != "" {
		t.Errorf("insertion order mismatch (-want +got):\n%s", diff)
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	c, _ := newTestCollection(t)
	seed(t, c)

	seen := make(map[uuid.UUID]bool)
	for _, e := range c.All() {
		if e.ID == uuid.Nil {
			t.Error("Expected non-nil ID")
		}
		if seen[e.ID] {
			t.Errorf("Duplicate ID %s", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestAddNil(t *testing.T) {
	c, hook := newTestCollection(t)

	_, err := c.Add(nil)
	if !errors.Is(err, ErrNilShape) {
		t.Errorf("Expected ErrNilShape, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("nil shape must not be stored")
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.WarnLevel {
		t.Error("Expected a warning for nil shape")
	}
}

func TestGetOutOfRange(t *testing.T) {
	c, hook := newTestCollection(t)
	seed(t, c)

	for _, index := range []int{-1, 4, 100} {
		hook.Reset()
		s, err := c.Get(index)
		if s != nil {
			t.Errorf("Get(%d): expected nil shape", index)
		}
		if !errors.Is(err, model.ErrShapeNotFound) {
			t.Errorf("Get(%d): expected ErrShapeNotFound, got %v", index, err)
		}
		entry := hook.LastEntry()
		if entry == nil || entry.Data["op"] != "collection.get" {
			t.Errorf("Get(%d): expected warning", index)
		}
	}
}

func TestRemove(t *testing.T) {
	c, _ := newTestCollection(t)
	shapes := seed(t, c)

	removed, err := c.Remove(1)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed != shapes[1] {
		t.Error("Remove returned a different shape")
	}
	if c.Len() != 3 {
		t.Errorf("Expected size 3, got %d", c.Len())
	}

	// 削除位置には後続の要素が詰められる
	next, err := c.Get(1)
	if err != nil || next != shapes[2] {
		t.Errorf("Expected shape previously at index 2, got %v (err %v)", next, err)
	}

	// 呼び出し元に渡された図形はコレクションの変更の影響を受けない
	c.TranslateAll(1, 1)
	if p := removed.Position(); p.X() != 1 || p.Y() != 1 {
		t.Errorf("Removed shape must not be touched by the collection, got %v", p)
	}

	for _, e := range c.All() {
		if e.Shape == removed {
			t.Error("Removed shape is still referenced by the collection")
		}
	}

	if _, err := c.Remove(3); !errors.Is(err, model.ErrShapeNotFound) {
		t.Errorf("Expected ErrShapeNotFound, got %v", err)
	}
}

func TestMetrics(t *testing.T) {
	c, _ := newTestCollection(t)
	seed(t, c)

	if got := c.Area(0); got != 50 {
		t.Errorf("Expected area 50, got %f", got)
	}
	if got := c.Perimeter(0); got != 30 {
		t.Errorf("Expected perimeter 30, got %f", got)
	}
	if got := c.Area(3); math.Abs(got-6) > 1e-9 {
		t.Errorf("Expected triangle area 6, got %f", got)
	}
	if got := c.Perimeter(3); math.Abs(got-12) > 1e-9 {
		t.Errorf("Expected triangle perimeter 12, got %f", got)
	}

	if got := c.Area(99); got != InvalidMetric {
		t.Errorf("Expected -1 sentinel, got %f", got)
	}
	if got := c.Perimeter(-1); got != InvalidMetric {
		t.Errorf("Expected -1 sentinel, got %f", got)
	}
}

func TestTranslateAll(t *testing.T) {
	c, _ := newTestCollection(t)
	seed(t, c)

	// 三角形の原点頂点と正方形はスキップされ、他は移動する
	c.TranslateAll(-5, -5)

	type pos struct{ X, Y int }
	var got []pos
	for _, e := range c.All() {
		p := e.Shape.Position()
		got = append(got, pos{p.X(), p.Y()})
	}
	want := []pos{{5, 15}, {1, 1}, {5, 5}, {0, 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestScaleAll(t *testing.T) {
	c, _ := newTestCollection(t)
	seed(t, c)

	c.ScaleAll(2, true)
	want := []float64{200, 64, math.Pi * 100, 24}
	for i, w := range want {
		if got := c.Area(i); math.Abs(got-w) > 1e-6 {
			t.Errorf("index %d: expected area %f, got %f", i, w, got)
		}
	}

	// 不正な係数は全図形で無視される
	c.ScaleAll(0, true)
	for i, w := range want {
		if got := c.Area(i); math.Abs(got-w) > 1e-6 {
			t.Errorf("index %d: expected unchanged area %f, got %f", i, w, got)
		}
	}

	c.ScaleAll(2, false)
	if got := c.Area(0); got != 50 {
		t.Errorf("Expected area 50 after round trip, got %f", got)
	}
}

func TestTranslateAndScaleByIndex(t *testing.T) {
	c, _ := newTestCollection(t)
	seed(t, c)

	if err := c.Translate(2, 5, 5); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	s, _ := c.Get(2)
	if p := s.Position(); p.X() != 15 || p.Y() != 15 {
		t.Errorf("Expected (15, 15), got %v", p)
	}

	if err := c.Scale(1, 3, true); err != nil {
		t.Fatalf("Scale failed: %v", err)
	}
	if got := c.Area(1); got != 144 {
		t.Errorf("Expected area 144, got %f", got)
	}

	if err := c.Translate(10, 1, 1); !errors.Is(err, model.ErrShapeNotFound) {
		t.Errorf("Expected ErrShapeNotFound, got %v", err)
	}
	if err := c.Scale(10, 2, true); !errors.Is(err, model.ErrShapeNotFound) {
		t.Errorf("Expected ErrShapeNotFound, got %v", err)
	}
}

func TestInspect(t *testing.T) {
	c, _ := newTestCollection(t)
	seed(t, c)

	var kind model.Kind
	if err := c.Inspect(2, func(e Entry) { kind = e.Shape.Kind() }); err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if kind != model.KindCircle {
		t.Errorf("Expected circle, got %s", kind)
	}

	called := false
	err := c.Inspect(7, func(Entry) { called = true })
	if !errors.Is(err, model.ErrShapeNotFound) || called {
		t.Errorf("Expected ErrShapeNotFound without calling fn, got %v", err)
	}
}

func TestDisplay(t *testing.T) {
	c, _ := newTestCollection(t)
	if got := c.Display(); got != "No shapes." {
		t.Errorf("Unexpected empty display %q", got)
	}

	seed(t, c)
	out := c.Display()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d:\n%s", len(lines), out)
	}
	prefixes := []string{"1. Rectangle", "2. Square", "3. Circle", "4. Triangle"}
	for i, p := range prefixes {
		if !strings.HasPrefix(lines[i], p) {
			t.Errorf("line %d: expected prefix %q, got %q", i, p, lines[i])
		}
	}
}

func TestAllStopsEarly(t *testing.T) {
	c, _ := newTestCollection(t)
	seed(t, c)

	n := 0
	for range c.All() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("Expected to stop after 2 entries, got %d", n)
	}
	// ロックが解放されていること
	if _, err := c.Add(model.NewSquare(model.NewCoordinate(0, 0), 1)); err != nil {
		t.Errorf("Add after early break failed: %v", err)
	}
}

func TestClose(t *testing.T) {
	c, hook := newTestCollection(t)
	seed(t, c)

	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty collection after Close, got %d", c.Len())
	}
	if entry := hook.LastEntry(); entry == nil || entry.Data["released"] != 4 {
		t.Errorf("Expected close log with released=4")
	}
	if _, err := c.Add(model.NewSquare(model.NewCoordinate(0, 0), 1)); !errors.Is(err, ErrCollectionClosed) {
		t.Errorf("Expected ErrCollectionClosed, got %v", err)
	}
	// 2回目の Close は何もしない
	if err := c.Close(); err != nil {
		t.Errorf("Second Close failed: %v", err)
	}
}

func TestRemoveEntryAndRead(t *testing.T) {
	c, _ := newTestCollection(t)
	seed(t, c)

	var ids []uuid.UUID
	c.Read(func(entries []Entry) {
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
	})
	if len(ids) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(ids))
	}

	e, err := c.RemoveEntry(0)
	if err != nil {
		t.Fatalf("RemoveEntry failed: %v", err)
	}
	if e.ID != ids[0] || e.Shape.Kind() != model.KindRectangle {
		t.Errorf("Unexpected removed entry %v", e)
	}

	var remaining []uuid.UUID
	c.Read(func(entries []Entry) {
		for _, e := range entries {
			remaining = append(remaining, e.ID)
		}
	})
	if diff := cmp.Diff(ids[1:], remaining); diff != "" {
		t.Errorf("remaining IDs mismatch (-want +got):\n%s", diff)
	}
}
