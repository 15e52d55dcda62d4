// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"math"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/termgraph/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	return encode(func(e *encoder) {
		e.uint64(uint64(id))
	})
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	d := &decoder{bs: data}
	id := core.ID(d.uint64())
	return id, d.finish("id")
}

// MarshalCorpus serializes a Corpus to bytes.
func MarshalCorpus(corpus *core.Corpus) []byte {
	return encode(func(e *encoder) {
		e.uint64(uint64(corpus.Id))
		e.string(corpus.Name)
		e.string(corpus.Description)
		e.time(corpus.InsertedAt)
		e.time(corpus.UpdatedAt)
	})
}

// UnmarshalCorpus deserializes a Corpus from bytes.
func UnmarshalCorpus(data []byte) (*core.Corpus, error) {
	d := &decoder{bs: data}
	corpus := &core.Corpus{
		Id:          core.ID(d.uint64()),
		Name:        d.string(),
		Description: d.string(),
		InsertedAt:  d.time(),
		UpdatedAt:   d.time(),
	}
	if err := d.finish("corpus"); err != nil {
		return nil, err
	}
	return corpus, nil
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	return encode(func(e *encoder) {
		e.uint64(uint64(doc.Id))
		e.string(doc.Corpus)
		e.string(doc.Name)
		e.string(doc.Source)
		e.int(doc.Length)
		e.time(doc.InsertedAt)
	})
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	d := &decoder{bs: data}
	doc := &core.Document{
		Id:         core.ID(d.uint64()),
		Corpus:     d.string(),
		Name:       d.string(),
		Source:     d.string(),
		Length:     d.int(),
		InsertedAt: d.time(),
	}
	if err := d.finish("document"); err != nil {
		return nil, err
	}
	return doc, nil
}

// MarshalTerm serializes a Term to bytes.
func MarshalTerm(term *core.Term) []byte {
	return encode(func(e *encoder) {
		e.uint64(uint64(term.Id))
		e.string(term.Corpus)
		e.string(term.Text)
		e.int(term.DocumentFrequency)
		e.float64(term.IDF)
		e.time(term.UpdatedAt)
	})
}

// UnmarshalTerm deserializes a Term from bytes.
func UnmarshalTerm(data []byte) (*core.Term, error) {
	d := &decoder{bs: data}
	term := &core.Term{
		Id:                core.ID(d.uint64()),
		Corpus:            d.string(),
		Text:              d.string(),
		DocumentFrequency: d.int(),
		IDF:               d.float64(),
		UpdatedAt:         d.time(),
	}
	if err := d.finish("term"); err != nil {
		return nil, err
	}
	return term, nil
}

// MarshalTermFrequency serializes a TermFrequency edge to bytes.
func MarshalTermFrequency(tf *core.TermFrequency) []byte {
	return encode(func(e *encoder) {
		e.uint64(uint64(tf.TermId))
		e.uint64(uint64(tf.DocumentId))
		e.int(tf.Count)
		e.float64(tf.TF)
		e.float64(tf.TFIDF)
	})
}

// UnmarshalTermFrequency deserializes a TermFrequency edge from bytes.
func UnmarshalTermFrequency(data []byte) (*core.TermFrequency, error) {
	d := &decoder{bs: data}
	tf := &core.TermFrequency{
		TermId:     core.ID(d.uint64()),
		DocumentId: core.ID(d.uint64()),
		Count:      d.int(),
		TF:         d.float64(),
		TFIDF:      d.float64(),
	}
	if err := d.finish("term frequency"); err != nil {
		return nil, err
	}
	return tf, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	return encode(func(e *encoder) {
		e.string(checkpoint.Stage)
		e.string(checkpoint.Corpus)
		e.int(checkpoint.EpochsDone)
		e.time(checkpoint.UpdatedAt)
	})
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	d := &decoder{bs: data}
	checkpoint := &core.Checkpoint{
		Stage:      d.string(),
		Corpus:     d.string(),
		EpochsDone: d.int(),
		UpdatedAt:  d.time(),
	}
	if err := d.finish("checkpoint"); err != nil {
		return nil, err
	}
	return checkpoint, nil
}

// encode runs write twice: once to size the buffer, once to fill it.
func encode(write func(e *encoder)) []byte {
	sizer := &encoder{}
	write(sizer)
	e := &encoder{bs: make([]byte, sizer.n)}
	write(e)
	return e.bs
}

// encoder writes MUS fields sequentially. With a nil buffer it only
// accumulates the encoded size.
type encoder struct {
	bs []byte
	n  int
}

func (e *encoder) uint64(v uint64) {
	if e.bs == nil {
		e.n += varint.Uint64.Size(v)
		return
	}
	e.n += varint.Uint64.Marshal(v, e.bs[e.n:])
}

func (e *encoder) int64(v int64) {
	if e.bs == nil {
		e.n += varint.Int64.Size(v)
		return
	}
	e.n += varint.Int64.Marshal(v, e.bs[e.n:])
}

func (e *encoder) int(v int) {
	e.int64(int64(v))
}

func (e *encoder) float64(v float64) {
	e.uint64(math.Float64bits(v))
}

func (e *encoder) string(v string) {
	if e.bs == nil {
		e.n += ord.String.Size(v)
		return
	}
	e.n += ord.String.Marshal(v, e.bs[e.n:])
}

// time stores microseconds since the epoch; the zero time is stored as 0.
func (e *encoder) time(v time.Time) {
	if v.IsZero() {
		e.int64(0)
		return
	}
	e.int64(v.UnixMicro())
}

// decoder reads MUS fields sequentially and remembers the first error.
type decoder struct {
	bs  []byte
	n   int
	err error
}

func (d *decoder) ready() bool {
	if d.err != nil {
		return false
	}
	if d.n >= len(d.bs) {
		d.err = ErrTruncatedData
		return false
	}
	return true
}

func (d *decoder) uint64() uint64 {
	if !d.ready() {
		return 0
	}
	v, n, err := varint.Uint64.Unmarshal(d.bs[d.n:])
	d.n += n
	d.err = err
	return v
}

func (d *decoder) int64() int64 {
	if !d.ready() {
		return 0
	}
	v, n, err := varint.Int64.Unmarshal(d.bs[d.n:])
	d.n += n
	d.err = err
	return v
}

func (d *decoder) int() int {
	return int(d.int64())
}

func (d *decoder) float64() float64 {
	return math.Float64frombits(d.uint64())
}

func (d *decoder) string() string {
	if !d.ready() {
		return ""
	}
	v, n, err := ord.String.Unmarshal(d.bs[d.n:])
	d.n += n
	d.err = err
	return v
}

func (d *decoder) time() time.Time {
	micros := d.int64()
	if micros == 0 {
		return time.Time{}
	}
	return time.UnixMicro(micros).UTC()
}

// finish reports the first decoding error, wrapped for the given value kind.
func (d *decoder) finish(kind string) error {
	if d.err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSerializationFailed, kind, d.err)
	}
	return nil
}
