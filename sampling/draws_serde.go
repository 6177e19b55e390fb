/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sampling

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/posterior/sir-go/internal"
)

// Draws is a persisted posterior sample together with the seed of the source
// that produced it, so a run can be reproduced.
type Draws[T any] struct {
	Seed  uint64
	Items []T
}

// EncodeDraws serializes d with a checksummed preamble.
func EncodeDraws[T any](d Draws[T], serde ItemsSerDe[T]) ([]byte, error) {
	if serde == nil {
		return nil, errors.New("nil serde")
	}
	if uint64(len(d.Items)) > math.MaxUint32 {
		return nil, fmt.Errorf("too many draws to encode: %d", len(d.Items))
	}

	var flags byte
	if len(d.Items) == 0 {
		flags |= drawsFlagEmpty
	}
	itemBytes := serde.SerializeToBytes(d.Items)

	buf := make([]byte, drawsPreambleBytes+len(itemBytes)+drawsChecksumBytes)
	drawsPreamble{
		preLongs: drawsPreambleLongs,
		serVer:   drawsSerVer,
		family:   byte(internal.FamilyEnum.Draws.Id),
		flags:    flags,
		count:    len(d.Items),
		seed:     d.Seed,
	}.put(buf)
	end := drawsPreambleBytes + copy(buf[drawsPreambleBytes:], itemBytes)
	binary.LittleEndian.PutUint64(buf[end:], checksum(buf[:end]))
	return buf, nil
}

// DecodeDraws deserializes bytes written by EncodeDraws.
func DecodeDraws[T any](data []byte, serde ItemsSerDe[T]) (Draws[T], error) {
	if serde == nil {
		return Draws[T]{}, errors.New("nil serde")
	}
	if len(data) < drawsPreambleBytes+drawsChecksumBytes {
		return Draws[T]{}, errors.New("data too short")
	}

	p := readDrawsPreamble(data)
	if p.serVer != drawsSerVer {
		return Draws[T]{}, fmt.Errorf("unsupported serialization version: %d", p.serVer)
	}
	if int(p.family) != internal.FamilyEnum.Draws.Id {
		return Draws[T]{}, errors.New("wrong family")
	}
	if p.preLongs != drawsPreambleLongs || p.preLongs > internal.FamilyEnum.Draws.MaxPreLongs {
		return Draws[T]{}, fmt.Errorf("invalid preamble longs: %d", p.preLongs)
	}

	end := len(data) - drawsChecksumBytes
	if want := binary.LittleEndian.Uint64(data[end:]); checksum(data[:end]) != want {
		return Draws[T]{}, errors.New("checksum mismatch")
	}

	if p.flags&drawsFlagEmpty != 0 {
		if p.count != 0 {
			return Draws[T]{}, errors.New("empty flag set with non-zero count")
		}
		return Draws[T]{Seed: p.seed, Items: []T{}}, nil
	}

	items, n, err := serde.DeserializeFromBytes(data[drawsPreambleBytes:end], p.count)
	if err != nil {
		return Draws[T]{}, err
	}
	if drawsPreambleBytes+n != end {
		return Draws[T]{}, fmt.Errorf("%d trailing bytes after items", end-drawsPreambleBytes-n)
	}
	return Draws[T]{Seed: p.seed, Items: items}, nil
}

func checksum(data []byte) uint64 {
	h := xxhash.NewWithSeed(drawsChecksumSeed)
	_, _ = h.Write(data)
	return h.Sum64()
}

// DrawsEncoder writes encoded draws to an io.Writer.
type DrawsEncoder[T any] struct {
	w     io.Writer
	serde ItemsSerDe[T]
}

// NewDrawsEncoder creates an encoder with the provided writer and serde.
func NewDrawsEncoder[T any](w io.Writer, serde ItemsSerDe[T]) DrawsEncoder[T] {
	return DrawsEncoder[T]{w: w, serde: serde}
}

// Encode writes the serialized draws to the encoder's writer.
func (e DrawsEncoder[T]) Encode(d Draws[T]) error {
	if e.w == nil {
		return errors.New("nil writer")
	}
	data, err := EncodeDraws(d, e.serde)
	if err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}

// DrawsDecoder reads encoded draws from an io.Reader.
type DrawsDecoder[T any] struct {
	r     io.Reader
	serde ItemsSerDe[T]
}

// NewDrawsDecoder creates a decoder with the provided reader and serde.
func NewDrawsDecoder[T any](r io.Reader, serde ItemsSerDe[T]) DrawsDecoder[T] {
	return DrawsDecoder[T]{r: r, serde: serde}
}

// Decode reads all bytes from the decoder's reader and deserializes them.
func (d DrawsDecoder[T]) Decode() (Draws[T], error) {
	if d.r == nil {
		return Draws[T]{}, errors.New("nil reader")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return Draws[T]{}, err
	}
	return DecodeDraws(data, d.serde)
}
