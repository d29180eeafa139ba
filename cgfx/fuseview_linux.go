//go:build fuse

package cgfx

import (
	"context"
	"fmt"
	"sort"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// DebugMount exposes an assembled container's block layout as a
// read-only FUSE filesystem: one file per block, named by its start
// offset, holding that block's raw bytes. It exists purely as an
// inspection aid for bwdump's mount subcommand; nothing in the write or
// read path depends on it.
type DebugMount struct {
	fs.Inode

	data    []byte
	offsets []uint64
}

// NewDebugMount builds a DebugMount over data, using offsets (as
// produced by blockwire.WithBlockOffsets during Assemble) to slice data
// into per-block files. offsets must be sorted ascending, which is the
// order Assemble reports them in.
func NewDebugMount(data []byte, offsets []uint64) *DebugMount {
	return &DebugMount{data: data, offsets: append([]uint64(nil), offsets...)}
}

func (m *DebugMount) blockBounds(i int) (start, end uint64) {
	start = m.offsets[i]
	if i+1 < len(m.offsets) {
		end = m.offsets[i+1]
	} else {
		end = uint64(len(m.data))
	}
	return
}

func (m *DebugMount) OnAdd(ctx context.Context) {
	for i := range m.offsets {
		start, end := m.blockBounds(i)
		name := fmt.Sprintf("block-%08x", start)
		child := m.NewPersistentInode(ctx, &blockFileNode{data: m.data[start:end]}, fs.StableAttr{Mode: syscall.S_IFREG})
		m.AddChild(name, child, false)
	}
	full := m.NewPersistentInode(ctx, &blockFileNode{data: m.data}, fs.StableAttr{Mode: syscall.S_IFREG})
	m.AddChild("full.bin", full, false)
}

var _ fs.NodeOnAdder = (*DebugMount)(nil)

// blockFileNode is a read-only in-memory file node backing one
// DebugMount entry.
type blockFileNode struct {
	fs.Inode
	data []byte
}

func (n *blockFileNode) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Size = uint64(len(n.data))
	out.Mode = 0444
	return 0
}

func (n *blockFileNode) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	return nil, fuse.FOPEN_KEEP_CACHE, 0
}

func (n *blockFileNode) Read(ctx context.Context, f fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	end := off + int64(len(dest))
	if end > int64(len(n.data)) {
		end = int64(len(n.data))
	}
	if off > end {
		off = end
	}
	return fuse.ReadResultData(n.data[off:end]), 0
}

var (
	_ fs.NodeGetattrer = (*blockFileNode)(nil)
	_ fs.NodeOpener    = (*blockFileNode)(nil)
	_ fs.NodeReader    = (*blockFileNode)(nil)
)

// Mount mounts a DebugMount over data at dir and returns the running
// server without waiting for it to be unmounted.
// Grounded on the teacher's use of hanwen/go-fuse for a read-only,
// attribute-driven view over a parsed container; generalized here from
// exposing squashfs inode content to exposing blockwire block content.
func Mount(dir string, data []byte, offsets []uint64) (*fuse.Server, error) {
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
	root := NewDebugMount(data, offsets)
	return fs.Mount(dir, root, &fs.Options{
		MountOptions: fuse.MountOptions{
			Debug:      false,
			FsName:     "blockwire-debug",
			Name:       "blockwire",
			AllowOther: false,
		},
	})
}
