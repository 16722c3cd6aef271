package stringslice

// Backing is a buffer owned outside of Go's heap, such as a value returned by
// RocksDB. *gorocksdb.Slice satisfies it.
type Backing interface {
	Free()
	Data() []byte
	Size() int
	Exists() bool
}

// Pinned keeps a Backing alive for as long as its view is in use.
type Pinned struct {
	Slice
	backing Backing
}

// Pin views the bytes of b. The view is valid until Release.
func Pin(b Backing) *Pinned {
	p := &Pinned{backing: b}
	if b != nil && b.Exists() {
		p.Slice = New(b.Data(), b.Size())
	}
	return p
}

// Exists reports whether the backing buffer held a value at all, which an
// empty view alone cannot tell.
func (p *Pinned) Exists() bool {
	return p.backing != nil && p.backing.Exists()
}

// Release frees the backing buffer. The view is empty afterwards and Release
// may be called again.
func (p *Pinned) Release() {
	if p.backing == nil {
		return
	}
	p.backing.Free()
	p.backing = nil
	p.Slice = Slice{}
}
