// Package storage defines the cheatsheet file-system abstraction.
package storage

// FileExt is the extension carried by every stored cheatsheet file.
const FileExt = ".yaml"

// Provider is the interface for cheatsheet file operations. Implementations
// resolve names through the identifier rules before touching the filesystem,
// so no operation can reach outside the store directory.
type Provider interface {
	// List returns the sorted names of every validly-named cheatsheet file.
	List() ([]string, error)
	// Read returns the raw bytes of the named cheatsheet.
	Read(name string) ([]byte, error)
	// Write atomically replaces the named cheatsheet's content.
	Write(name string, content []byte) error
	// Create atomically writes a new cheatsheet and fails with os.ErrExist
	// when the name is already taken.
	Create(name string, content []byte) error
	// Delete removes the named cheatsheet file.
	Delete(name string) error
	// Exists reports whether the named cheatsheet file is present.
	Exists(name string) (bool, error)
}
