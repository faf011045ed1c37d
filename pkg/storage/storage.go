// Package storage persists encoded containers in a pebble database keyed
// by ksuid. Every container is decoded before it is stored so the store
// only ever holds well-formed data.
package storage

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"github.com/ssargent/flashkit/pkg/inspect"
)

var (
	// ErrNotFound is returned for identifiers with no stored asset.
	ErrNotFound = errors.New("storage: asset not found")

	// ErrCorrupt is returned for stored values that cannot be parsed.
	ErrCorrupt = errors.New("storage: corrupt asset")
)

var (
	keyPrefix = []byte("asset/")
	keyLimit  = []byte("asset0")
)

// Asset is one stored container.
type Asset struct {
	ID   ksuid.KSUID
	Kind inspect.Kind
	Data []byte
}

// AssetInfo describes an asset without its data.
type AssetInfo struct {
	ID   string       `json:"id"`
	Kind inspect.Kind `json:"kind"`
	Size int          `json:"size"`
}

// AssetStore holds validated containers.
type AssetStore struct {
	// Inspector validates containers passed to Put.
	Inspector inspect.Inspector

	db *pebble.DB
}

// Open opens or creates the store in the directory at path.
func Open(path string) (*AssetStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open asset store at %s", path)
	}
	return &AssetStore{db: db}, nil
}

func assetKey(id ksuid.KSUID) []byte {
	return append(append([]byte(nil), keyPrefix...), id.Bytes()...)
}

// value layout: [kind length(1)][kind][data]
func encodeValue(kind inspect.Kind, data []byte) []byte {
	out := make([]byte, 0, 1+len(kind)+len(data))
	out = append(out, byte(len(kind)))
	out = append(out, kind...)
	return append(out, data...)
}

func decodeValue(value []byte) (inspect.Kind, []byte, error) {
	if len(value) == 0 || int(value[0])+1 > len(value) {
		return "", nil, ErrCorrupt
	}
	n := int(value[0]) + 1
	return inspect.Kind(value[1:n]), value[n:], nil
}

// Put decodes data as kind and stores it under a new identifier. The
// inspection report of the decoded container is returned with the id.
func (s *AssetStore) Put(kind inspect.Kind, data []byte) (ksuid.KSUID, *inspect.Report, error) {
	report, err := s.Inspector.Inspect(kind, data)
	if err != nil {
		return ksuid.Nil, nil, errors.Wrap(err, "refusing to store invalid container")
	}

	id := ksuid.New()
	if err := s.db.Set(assetKey(id), encodeValue(kind, data), pebble.Sync); err != nil {
		return ksuid.Nil, nil, errors.Wrap(err, "failed to store asset")
	}
	return id, report, nil
}

// Get returns the asset stored under id.
func (s *AssetStore) Get(id ksuid.KSUID) (*Asset, error) {
	value, closer, err := s.db.Get(assetKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "%s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read asset %s", id)
	}
	defer closer.Close()

	kind, data, err := decodeValue(value)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", id)
	}
	return &Asset{ID: id, Kind: kind, Data: bytes.Clone(data)}, nil
}

// Delete removes the asset stored under id.
func (s *AssetStore) Delete(id ksuid.KSUID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.db.Delete(assetKey(id), pebble.Sync)
}

// List returns every stored asset in identifier order, which is creation
// order.
func (s *AssetStore) List() ([]AssetInfo, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: keyPrefix, UpperBound: keyLimit})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assets")
	}
	defer iter.Close()

	infos := []AssetInfo{}
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key()[len(keyPrefix):])
		if err != nil {
			return nil, errors.Wrap(ErrCorrupt, err.Error())
		}
		kind, data, err := decodeValue(iter.Value())
		if err != nil {
			return nil, errors.Wrapf(err, "%s", id)
		}
		infos = append(infos, AssetInfo{ID: id.String(), Kind: kind, Size: len(data)})
	}
	return infos, iter.Error()
}

func (s *AssetStore) Close() error {
	return s.db.Close()
}
