// Package collection は、図形を挿入順に保持するコレクションを提供します。
package collection

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stsysd/shapekit/model"
)

// センチネルエラー
var (
	ErrNilShape         = errors.New("shape is nil")
	ErrCollectionClosed = errors.New("collection is closed")
)

// InvalidMetric は無効なインデックスに対して Area / Perimeter が返す値です。
const InvalidMetric = -1.0

// Entry はコレクション内の1要素です。ID は挿入時に割り当てられます。
type Entry struct {
	ID    uuid.UUID
	Shape model.Shape
}

// ShapeCollection は図形の所有権を持つ、順序付きのコレクションです。
// 挿入順がインデックスの順序になります。
// 全ての操作は1つの RWMutex で保護されます。
type ShapeCollection struct {
	mu      sync.RWMutex
	entries []Entry
	closed  bool
	logger  logrus.FieldLogger
}

// New は空のコレクションを作成します。logger が nil の場合は標準ロガーを使います。
func New(logger logrus.FieldLogger) *ShapeCollection {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ShapeCollection{logger: logger}
}

// Add はコレクションの末尾に図形を追加し、割り当てた ID を返します。
func (c *ShapeCollection) Add(s model.Shape) (uuid.UUID, error) {
	if s == nil {
		c.logger.WithField("op", "collection.add").Warn("cannot add a nil shape, operation skipped")
		return uuid.Nil, ErrNilShape
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return uuid.Nil, ErrCollectionClosed
	}
	id := uuid.New()
	c.entries = append(c.entries, Entry{ID: id, Shape: s})
	c.logger.WithFields(logrus.Fields{
		"id":    id,
		"kind":  s.Kind(),
		"index": len(c.entries) - 1,
	}).Debug("shape added")
	return id, nil
}

// Len は保持している図形の数を返します。
func (c *ShapeCollection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// lookup returns the entry at index. The caller must hold the lock.
func (c *ShapeCollection) lookup(op string, index int) (Entry, error) {
	if index < 0 || index >= len(c.entries) {
		c.logger.WithFields(logrus.Fields{
			"op":    op,
			"index": index,
			"size":  len(c.entries),
		}).Warn("invalid shape index")
		return Entry{}, fmt.Errorf("%w: index %d (size %d)", model.ErrShapeNotFound, index, len(c.entries))
	}
	return c.entries[index], nil
}

// Get は指定位置の図形を返します。図形の所有権はコレクションに残ります。
// 範囲外の場合は model.ErrShapeNotFound をラップしたエラーを返します。
func (c *ShapeCollection) Get(index int) (model.Shape, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, err := c.lookup("collection.get", index)
	if err != nil {
		return nil, err
	}
	return e.Shape, nil
}

// Inspect は読み取りロックを保持したまま指定位置の要素を fn に渡します。
// fn の中からコレクションを変更してはいけません。
func (c *ShapeCollection) Inspect(index int, fn func(Entry)) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, err := c.lookup("collection.inspect", index)
	if err != nil {
		return err
	}
	fn(e)
	return nil
}

// Remove は指定位置の図形を取り除き、その所有権を呼び出し元に移します。
// 後続の要素のインデックスは1つずつ前に詰められます。
func (c *ShapeCollection) Remove(index int) (model.Shape, error) {
	e, err := c.RemoveEntry(index)
	if err != nil {
		return nil, err
	}
	return e.Shape, nil
}

// RemoveEntry は Remove と同じですが、割り当てられていた ID も返します。
func (c *ShapeCollection) RemoveEntry(index int) (Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.lookup("collection.remove", index)
	if err != nil {
		return Entry{}, err
	}
	copy(c.entries[index:], c.entries[index+1:])
	c.entries[len(c.entries)-1] = Entry{}
	c.entries = c.entries[:len(c.entries)-1]

	c.logger.WithFields(logrus.Fields{"id": e.ID, "kind": e.Shape.Kind(), "index": index}).Debug("shape removed")
	return e, nil
}

// Area は指定位置の図形の面積を返します。範囲外の場合は InvalidMetric を返します。
func (c *ShapeCollection) Area(index int) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, err := c.lookup("collection.area", index)
	if err != nil {
		return InvalidMetric
	}
	return e.Shape.Area()
}

// Perimeter は指定位置の図形の周長を返します。範囲外の場合は InvalidMetric を返します。
func (c *ShapeCollection) Perimeter(index int) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, err := c.lookup("collection.perimeter", index)
	if err != nil {
		return InvalidMetric
	}
	return e.Shape.Perimeter()
}

// Translate は指定位置の図形を移動します。
func (c *ShapeCollection) Translate(index, dx, dy int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.lookup("collection.translate", index)
	if err != nil {
		return err
	}
	e.Shape.Translate(dx, dy)
	return nil
}

// Scale は指定位置の図形を拡縮します。
func (c *ShapeCollection) Scale(index, factor int, multiply bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.lookup("collection.scale", index)
	if err != nil {
		return err
	}
	e.Shape.Scale(factor, multiply)
	return nil
}

// TranslateAll は全ての図形を挿入順に移動します。
// 個々の図形でスキップされても処理は継続します。
func (c *ShapeCollection) TranslateAll(dx, dy int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		e.Shape.Translate(dx, dy)
	}
}

// ScaleAll は全ての図形を挿入順に拡縮します。
func (c *ShapeCollection) ScaleAll(factor int, multiply bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		e.Shape.Scale(factor, multiply)
	}
}

// Display は全ての図形の説明を1始まりの番号付きで連結して返します。
func (c *ShapeCollection) Display() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.entries) == 0 {
		return "No shapes."
	}
	var sb strings.Builder
	for i, e := range c.entries {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, e.Shape.Display())
	}
	return sb.String()
}

// All はインデックスと要素を挿入順に返すイテレータです。
// 反復中は読み取りロックを保持するため、ループ内でコレクションを変更してはいけません。
func (c *ShapeCollection) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		c.mu.RLock()
		defer c.mu.RUnlock()

		for i, e := range c.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Read は読み取りロックを保持したまま全要素を fn に渡します。
// entries は fn の外に保持してはいけません。
func (c *ShapeCollection) Read(fn func(entries []Entry)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.entries)
}

// Close は保持している全ての図形を解放します。以降の Add は ErrCollectionClosed を返します。
func (c *ShapeCollection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	released := len(c.entries)
	clear(c.entries)
	c.entries = nil
	c.closed = true
	c.logger.WithField("released", released).Debug("collection closed")
	return nil
}
