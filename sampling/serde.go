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
	"math"
)

// ItemsSerDe serializes and deserializes resampled items.
// Float64SerDe and StringSerDe cover the common cases.
type ItemsSerDe[T any] interface {
	// SerializeToBytes converts items to a byte slice.
	SerializeToBytes(items []T) []byte

	// DeserializeFromBytes converts bytes back to items.
	// numItems specifies how many items to read from the data. It also
	// returns the number of bytes consumed.
	DeserializeFromBytes(data []byte, numItems int) ([]T, int, error)
}

// Float64SerDe stores float64 items as 8 little-endian bytes each.
type Float64SerDe struct{}

func (s Float64SerDe) SerializeToBytes(items []float64) []byte {
	buf := make([]byte, len(items)*8)
	for i, v := range items {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

func (s Float64SerDe) DeserializeFromBytes(data []byte, numItems int) ([]float64, int, error) {
	if numItems < 0 || len(data) < numItems*8 {
		return nil, 0, errors.New("data too short for float64 deserialization")
	}
	items := make([]float64, numItems)
	for i := range items {
		items[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return items, numItems * 8, nil
}

// StringSerDe stores each string as a 4-byte length prefix plus its bytes.
type StringSerDe struct{}

func (s StringSerDe) SerializeToBytes(items []string) []byte {
	totalSize := 0
	for _, str := range items {
		totalSize += 4 + len(str)
	}

	buf := make([]byte, totalSize)
	offset := 0
	for _, str := range items {
		binary.LittleEndian.PutUint32(buf[offset:], uint32(len(str)))
		offset += 4
		offset += copy(buf[offset:], str)
	}
	return buf
}

func (s StringSerDe) DeserializeFromBytes(data []byte, numItems int) ([]string, int, error) {
	if numItems < 0 {
		return nil, 0, errors.New("negative item count")
	}
	items := make([]string, numItems)
	offset := 0
	for i := range items {
		if offset+4 > len(data) {
			return nil, 0, errors.New("data too short for string length")
		}
		length := int(binary.LittleEndian.Uint32(data[offset:]))
		offset += 4

		if length > len(data)-offset {
			return nil, 0, errors.New("data too short for string content")
		}
		items[i] = string(data[offset : offset+length])
		offset += length
	}
	return items, offset, nil
}
