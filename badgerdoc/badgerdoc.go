// seehuhn.de/go/annotedit - interactive editing of vector annotations
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package badgerdoc implements an annotation document which is stored
// in a BadgerDB database.
//
// Every annotation is stored under its handle as a protobuf Struct.
// Large records, typically ink with many points, are compressed with
// LZMA.  A secondary index maps each page to its annotations, in
// creation order.
package badgerdoc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"seehuhn.de/go/annotedit"
)

// DefaultCompressAbove is the record size, in bytes, above which records
// are compressed.
const DefaultCompressAbove = 4096

var (
	annotPrefix = []byte("a/")
	pagePrefix  = []byte("p/")
	seqKey      = []byte("s/annot")
)

// Config describes how to open a document.
type Config struct {
	// Path is the database directory.  It is ignored if InMemory is set.
	Path string

	// InMemory keeps the database in memory only.
	InMemory bool

	// CompressAbove is the record size above which records are
	// compressed.  Zero means [DefaultCompressAbove], a negative value
	// disables compression.
	CompressAbove int

	Logger logrus.FieldLogger
}

// Document is an annotation document backed by BadgerDB.
// It is safe for concurrent use.
type Document struct {
	db  *badger.DB
	seq *badger.Sequence
	log logrus.FieldLogger

	compressAbove int

	mu     sync.Mutex
	locked bool
}

var _ annotedit.Document = (*Document)(nil)

// Open opens or creates a document.
func Open(cfg Config) (*Document, error) {
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = l
	}
	if cfg.CompressAbove == 0 {
		cfg.CompressAbove = DefaultCompressAbove
	}
	if cfg.Path == "" && !cfg.InMemory {
		return nil, errors.New("badgerdoc: no database path given")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerdoc: %w", err)
	}
	seq, err := db.GetSequence(seqKey, 64)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("badgerdoc: %w", err)
	}

	cfg.Logger.WithFields(logrus.Fields{
		"path":     cfg.Path,
		"inMemory": cfg.InMemory,
	}).Debug("annotation database opened")

	return &Document{
		db:            db,
		seq:           seq,
		log:           cfg.Logger,
		compressAbove: cfg.CompressAbove,
	}, nil
}

// Close closes the database.
func (d *Document) Close() error {
	err := d.seq.Release()
	if err2 := d.db.Close(); err == nil {
		err = err2
	}
	return err
}

// BeginExclusiveEdit implements [annotedit.Committer].
func (d *Document) BeginExclusiveEdit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.locked {
		return annotedit.ErrLocked
	}
	d.locked = true
	return nil
}

// EndExclusiveEdit implements [annotedit.Committer].
func (d *Document) EndExclusiveEdit() {
	d.mu.Lock()
	d.locked = false
	d.mu.Unlock()
}

func (d *Document) checkLocked() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.locked {
		return annotedit.ErrNotLocked
	}
	return nil
}

// CreateAnnotation implements [annotedit.Committer].
func (d *Document) CreateAnnotation(kind annotedit.Kind, page int, g annotedit.Geometry) (annotedit.Handle, error) {
	if err := check(kind, g); err != nil {
		return "", err
	}
	if err := d.checkLocked(); err != nil {
		return "", err
	}

	seq, err := d.seq.Next()
	if err != nil {
		return "", err
	}
	h := annotedit.Handle(uuid.NewString())
	r := &record{Page: page, Seq: seq, Revision: 1, Geometry: g}
	data, err := d.marshal(h, r)
	if err != nil {
		return "", err
	}

	err = d.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(annotKey(h), data); err != nil {
			return err
		}
		return txn.Set(pageKey(page, seq), []byte(h))
	})
	if err != nil {
		return "", err
	}
	return h, nil
}

// UpdateAnnotation implements [annotedit.Committer].
func (d *Document) UpdateAnnotation(h annotedit.Handle, g annotedit.Geometry) error {
	if err := d.checkLocked(); err != nil {
		return err
	}
	return d.db.Update(func(txn *badger.Txn) error {
		r, err := get(txn, h)
		if err != nil {
			return err
		}
		if err := check(r.Shape.Kind(), g); err != nil {
			return err
		}
		r.Geometry = g
		r.Revision++
		data, err := d.marshal(h, r)
		if err != nil {
			return err
		}
		return txn.Set(annotKey(h), data)
	})
}

// RemoveAnnotation implements [annotedit.Committer].
func (d *Document) RemoveAnnotation(h annotedit.Handle) error {
	if err := d.checkLocked(); err != nil {
		return err
	}
	return d.db.Update(func(txn *badger.Txn) error {
		r, err := get(txn, h)
		if err != nil {
			return err
		}
		if err := txn.Delete(pageKey(r.Page, r.Seq)); err != nil {
			return err
		}
		return txn.Delete(annotKey(h))
	})
}

// Annotation implements [annotedit.Reader].
func (d *Document) Annotation(h annotedit.Handle) (*annotedit.Annotation, error) {
	var a *annotedit.Annotation
	err := d.db.View(func(txn *badger.Txn) error {
		r, err := get(txn, h)
		if err != nil {
			return err
		}
		a = r.annotation(h)
		return nil
	})
	return a, err
}

// Annotations implements [annotedit.Reader].
func (d *Document) Annotations(page int) ([]*annotedit.Annotation, error) {
	var res []*annotedit.Annotation
	err := d.db.View(func(txn *badger.Txn) error {
		prefix := pageKey(page, 0)[:len(pagePrefix)+4]
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			h := annotedit.Handle(val)
			r, err := get(txn, h)
			if errors.Is(err, annotedit.ErrNotFound) {
				d.log.WithFields(logrus.Fields{
					"page":   page,
					"handle": h,
				}).Warn("dangling page index entry, skipped")
				continue
			} else if err != nil {
				return err
			}
			res = append(res, r.annotation(h))
		}
		return nil
	})
	return res, err
}

// Len returns the total number of annotations.
func (d *Document) Len() (int, error) {
	n := 0
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(annotPrefix); it.ValidForPrefix(annotPrefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

func (d *Document) marshal(h annotedit.Handle, r *record) ([]byte, error) {
	data, err := marshal(r, d.compressAbove)
	if err != nil {
		return nil, err
	}
	if data[0] == encLZMA {
		d.log.WithFields(logrus.Fields{
			"handle": h,
			"size":   len(data),
		}).Debug("annotation record compressed")
	}
	return data, nil
}

func get(txn *badger.Txn, h annotedit.Handle) (*record, error) {
	item, err := txn.Get(annotKey(h))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, annotedit.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	data, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	r, err := unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("annotation %s: %w", h, err)
	}
	return r, nil
}

func (r *record) annotation(h annotedit.Handle) *annotedit.Annotation {
	return &annotedit.Annotation{
		Handle:   h,
		Page:     r.Page,
		Geometry: r.Geometry,
		Revision: r.Revision,
	}
}

func annotKey(h annotedit.Handle) []byte {
	return append(append([]byte{}, annotPrefix...), string(h)...)
}

// pageKey returns the index key of an annotation.  Keys sort by page,
// then by creation order.
func pageKey(page int, seq uint64) []byte {
	key := make([]byte, 0, len(pagePrefix)+12)
	key = append(key, pagePrefix...)
	key = binary.BigEndian.AppendUint32(key, uint32(page))
	key = binary.BigEndian.AppendUint64(key, seq)
	return key
}

func check(kind annotedit.Kind, g annotedit.Geometry) error {
	if g.Shape == nil {
		return &annotedit.InvalidGeometryError{Kind: kind, Reason: "missing shape"}
	}
	if g.Shape.Kind() != kind {
		return &annotedit.InvalidGeometryError{Kind: kind, Reason: "shape is a " + g.Shape.Kind().String()}
	}
	return annotedit.Validate(g.Shape)
}
