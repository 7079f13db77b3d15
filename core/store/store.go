package store

import (
	"bytes"
	"sync"

	"github.com/bluele/gcache"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
	"github.com/meverselabs/partyround/common/hash"
	"github.com/meverselabs/partyround/common/rlog"
	"github.com/meverselabs/partyround/core/types"
)

const memoryPath = ":memory:"

// Store persists committed contexts and serves them back as a types.Loader
type Store struct {
	sync.Mutex
	db     *leveldb.DB
	cache  gcache.Cache
	closed bool
}

// NewStore opens the leveldb database at the path, ":memory:" keeps it in memory
func NewStore(path string, cacheSize int) (*Store, error) {
	var db *leveldb.DB
	var err error
	if path == memoryPath {
		db, err = leveldb.Open(storage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(path, nil)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if cacheSize <= 0 {
		cacheSize = 500
	}
	return &Store{
		db:    db,
		cache: gcache.New(cacheSize).LRU().Build(),
	}, nil
}

// NewMemoryStore returns a store without a backing file
func NewMemoryStore() (*Store, error) {
	return NewStore(memoryPath, 0)
}

// Close closes the database
func (st *Store) Close() {
	st.Lock()
	defer st.Unlock()
	if st.closed {
		return
	}
	st.closed = true
	st.db.Close()
}

func (st *Store) get(key []byte) []byte {
	if v, err := st.cache.Get(string(key)); err == nil {
		return v.([]byte)
	}
	v, err := st.db.Get(key, nil)
	if err != nil {
		if err != leveldb.ErrNotFound {
			rlog.Warnw("store read failed", "err", err)
		}
		return nil
	}
	st.cache.Set(string(key), v)
	return v
}

// Data returns the committed data
func (st *Store) Data(cont common.Address, addr common.Address, name []byte) []byte {
	key := string(cont[:]) + string(addr[:]) + string(name)
	return st.get(toDataKey(key))
}

// ContractDefine returns the committed define of the contract
func (st *Store) ContractDefine(addr common.Address) (*types.ContractDefine, error) {
	bs := st.get(toContractDefineKey(addr))
	if len(bs) == 0 {
		return nil, errors.WithStack(types.ErrNotExistContract)
	}
	cd := &types.ContractDefine{}
	if _, err := cd.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	return cd, nil
}

// AddrSeq returns the committed sequence of the address
func (st *Store) AddrSeq(addr common.Address) uint64 {
	return bin.Uint64(st.get(toAddrSeqKey(addr)))
}

// StateHash returns the hash of the last applied context
func (st *Store) StateHash() hash.Hash256 {
	var h hash.Hash256
	copy(h[:], st.get([]byte{tagStateHash}))
	return h
}

// EventCount returns the number of stored events
func (st *Store) EventCount() uint64 {
	return bin.Uint64(st.get([]byte{tagEventCount}))
}

// Events returns stored events from the offset, at most limit entries
func (st *Store) Events(offset uint64, limit int) ([]*types.Event, error) {
	st.Lock()
	defer st.Unlock()
	if st.closed {
		return nil, errors.WithStack(ErrStoreClosed)
	}
	iter := st.db.NewIterator(&util.Range{Start: toEventKey(offset), Limit: toEventKey(^uint64(0))}, nil)
	defer iter.Release()

	list := []*types.Event{}
	for iter.Next() && len(list) < limit {
		e := &types.Event{}
		if _, err := e.ReadFrom(bytes.NewReader(iter.Value())); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	if err := iter.Error(); err != nil {
		return nil, errors.WithStack(err)
	}
	return list, nil
}

// Apply writes the top layer of the committed context in one batch
func (st *Store) Apply(ctx *types.Context) error {
	st.Lock()
	defer st.Unlock()
	if st.closed {
		return errors.WithStack(ErrStoreClosed)
	}

	ctd := ctx.Top()
	batch := new(leveldb.Batch)
	if err := ctd.EachContractDefine(func(cd *types.ContractDefine) error {
		bs, _, err := bin.WriterToBytes(cd)
		if err != nil {
			return err
		}
		batch.Put(toContractDefineKey(cd.Address), bs)
		return nil
	}); err != nil {
		return err
	}
	ctd.EachAddrSeq(func(addr common.Address, seq uint64) error {
		batch.Put(toAddrSeqKey(addr), bin.Uint64Bytes(seq))
		return nil
	})
	ctd.EachData(func(key string, value []byte, deleted bool) error {
		if deleted {
			batch.Delete(toDataKey(key))
		} else {
			batch.Put(toDataKey(key), value)
		}
		return nil
	})
	n := st.EventCount()
	for _, e := range ctd.Events {
		bs, _, err := bin.WriterToBytes(e)
		if err != nil {
			return err
		}
		batch.Put(toEventKey(n), bs)
		n++
	}
	batch.Put([]byte{tagEventCount}, bin.Uint64Bytes(n))
	h := ctd.Hash()
	batch.Put([]byte{tagStateHash}, h[:])

	if err := st.db.Write(batch, nil); err != nil {
		return errors.WithStack(err)
	}
	st.cache.Purge()
	return nil
}

// IsContract returns true when the contract is deployed
func (st *Store) IsContract(addr common.Address) bool {
	_, err := st.ContractDefine(addr)
	return err == nil
}
