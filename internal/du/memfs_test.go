package du

import (
	"io/fs"
	"path"
	"sync/atomic"
	"syscall"
)

// memNode is one entry of memFS.
type memNode struct {
	blocks     int64
	dir        bool
	children   []string
	unreadable bool
	statErr    error
}

// memFS is an in-memory FS. It is built before a walk and only read during it.
type memFS struct {
	nodes map[string]*memNode
	reads atomic.Int64
}

func newMemFS() *memFS {
	return &memFS{nodes: make(map[string]*memNode)}
}

func (m *memFS) add(p string, node *memNode) *memFS {
	p = path.Clean(p)
	m.nodes[p] = node

	if parent, ok := m.nodes[path.Dir(p)]; ok && path.Dir(p) != p {
		parent.children = append(parent.children, path.Base(p))
	}

	return m
}

// dir adds a directory with its own allocation.
func (m *memFS) dir(p string, blocks int64) *memFS {
	return m.add(p, &memNode{blocks: blocks, dir: true})
}

// file adds a regular file.
func (m *memFS) file(p string, blocks int64) *memFS {
	return m.add(p, &memNode{blocks: blocks})
}

// deny makes the directory at p unreadable.
func (m *memFS) deny(p string) *memFS {
	m.nodes[path.Clean(p)].unreadable = true

	return m
}

// vanish makes stat of p fail while its parent still lists it.
func (m *memFS) vanish(p string) *memFS {
	m.nodes[path.Clean(p)].statErr = syscall.ENOENT

	return m
}

func (m *memFS) lookup(p string) (*memNode, bool) {
	node, ok := m.nodes[path.Clean(p)]

	return node, ok
}

func (m *memFS) Stat(p string) (Entry, error) {
	node, ok := m.lookup(p)
	if !ok {
		return Entry{}, &fs.PathError{Op: "lstat", Path: p, Err: syscall.ENOENT}
	}

	if node.statErr != nil {
		return Entry{}, &fs.PathError{Op: "lstat", Path: p, Err: node.statErr}
	}

	return Entry{Blocks: node.blocks, IsDir: node.dir}, nil
}

func (m *memFS) ReadDir(p string) ([]string, error) {
	m.reads.Add(1)

	node, ok := m.lookup(p)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: syscall.ENOENT}
	}

	if !node.dir {
		return nil, &fs.PathError{Op: "open", Path: p, Err: syscall.ENOTDIR}
	}

	if node.unreadable {
		return nil, &fs.PathError{Op: "open", Path: p, Err: syscall.EACCES}
	}

	return append([]string(nil), node.children...), nil
}

// total is the expected usage below p, not counting p itself, skipping
// unreadable directories.
func (m *memFS) total(p string) int64 {
	node := m.nodes[path.Clean(p)]
	if node.unreadable {
		return 0
	}

	var sum int64

	for _, name := range node.children {
		child := path.Join(p, name)
		sum += m.nodes[child].blocks

		if m.nodes[child].dir {
			sum += m.total(child)
		}
	}

	return sum
}

// tree builds a deterministic tree of the given depth and fan-out under root.
func tree(root string, depth, fanout int) *memFS {
	m := newMemFS().dir(root, 8)

	var build func(dir string, level int)

	build = func(dir string, level int) {
		for i := range fanout {
			name := path.Join(dir, "f"+string(rune('a'+i)))
			m.file(name, int64((level+1)*(i+1)*8))
		}

		if level == depth {
			return
		}

		for i := range fanout {
			sub := path.Join(dir, "d"+string(rune('a'+i)))
			m.dir(sub, 8)
			build(sub, level+1)
		}
	}

	build(root, 0)

	return m
}
