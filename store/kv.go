// Package store persists named datasets in a key value store. Several
// key value backends are available; all of them present the same KV
// interface to the dataset layer.
package store

type KV interface {
	// Iterate positions an iterator at the first key greater than or
	// equal to key. The item callback returns io.EOF to stop early.
	Iterate(key []byte) (Iterator, error)

	// Get calls fn with the value stored at key, or returns io.EOF if
	// the key is not present.
	Get(key []byte, fn func(val []byte) error) error

	Updater() (Updater, error)
	Close() error
}

type Iterator interface {
	Item(fn func(key, val []byte) error) error
	Close()
}

type Updater interface {
	Get(key []byte, fn func(val []byte) error) error
	Set(key, val []byte) error
	Delete(key []byte) error
	Commit(sync bool) error
	Rollback()
}
