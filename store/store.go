package store

import (
	"fmt"
	"io"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/masqdata/masq/tab"
)

const (
	datasetKeyPrefix = 1
)

type DatasetNotFoundError struct {
	Name string
}

func (e *DatasetNotFoundError) Error() string {
	return fmt.Sprintf("store: dataset not found: %s", e.Name)
}

type Store struct {
	kv KV
}

// OpenStore opens a dataset store of the requested type: btree, bbolt,
// badger, or pebble. The btree store is in memory only.
func OpenStore(typ, dataDir string, logger *log.Logger) (*Store, error) {
	var kv KV
	var err error
	switch typ {
	case "btree":
		kv, err = MakeBTreeKV()
	case "bbolt":
		kv, err = MakeBBoltKV(dataDir)
	case "badger":
		kv, err = MakeBadgerKV(dataDir, logger)
	case "pebble":
		kv, err = MakePebbleKV(dataDir, logger)
	default:
		return nil, fmt.Errorf("store: unknown store type: %s", typ)
	}
	if err != nil {
		return nil, err
	}

	return NewStore(kv), nil
}

func NewStore(kv KV) *Store {
	return &Store{
		kv: kv,
	}
}

func datasetKey(nam string) []byte {
	buf := make([]byte, 0, len(nam)+1)
	buf = append(buf, datasetKeyPrefix)
	return append(buf, nam...)
}

func (st *Store) Get(nam string) (*tab.Dataset, error) {
	var ds *tab.Dataset
	err := st.kv.Get(datasetKey(nam),
		func(val []byte) error {
			var err error
			ds, err = DecodeDataset(val)
			return err
		})
	if err == io.EOF {
		return nil, &DatasetNotFoundError{Name: nam}
	} else if err != nil {
		return nil, err
	}
	return ds, nil
}

func (st *Store) Put(nam string, ds *tab.Dataset) error {
	if nam == "" {
		return fmt.Errorf("store: dataset name must not be empty")
	}

	upd, err := st.kv.Updater()
	if err != nil {
		return err
	}
	err = upd.Set(datasetKey(nam), EncodeDataset(ds))
	if err != nil {
		upd.Rollback()
		return err
	}
	return upd.Commit(true)
}

func (st *Store) Delete(nam string) error {
	err := st.kv.Get(datasetKey(nam), func([]byte) error { return nil })
	if err == io.EOF {
		return &DatasetNotFoundError{Name: nam}
	} else if err != nil {
		return err
	}

	upd, err := st.kv.Updater()
	if err != nil {
		return err
	}
	err = upd.Delete(datasetKey(nam))
	if err != nil {
		upd.Rollback()
		return err
	}
	return upd.Commit(true)
}

// List returns the names of the stored datasets in sorted order.
func (st *Store) List() ([]string, error) {
	it, err := st.kv.Iterate([]byte{datasetKeyPrefix})
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var names []string
	for {
		err = it.Item(
			func(key, val []byte) error {
				if len(key) < 1 || key[0] != datasetKeyPrefix {
					return io.EOF
				}
				names = append(names, string(key[1:]))
				return nil
			})
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
	}

	sort.Strings(names)
	return names, nil
}

func (st *Store) Close() error {
	return st.kv.Close()
}
