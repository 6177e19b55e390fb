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

import "encoding/binary"

const (
	drawsPreambleLongs = 2
	drawsPreambleBytes = drawsPreambleLongs * 8
	drawsSerVer        = 1
	drawsFlagEmpty     = 0x04
	drawsChecksumBytes = 8
	drawsChecksumSeed  = uint64(9001)
)

// Preamble layout, little-endian:
//
//	byte 0     preamble longs
//	byte 1     serialization version
//	byte 2     family id
//	byte 3     flags
//	bytes 4-7  number of draws
//	bytes 8-15 seed of the source that produced the draws
type drawsPreamble struct {
	preLongs int
	serVer   byte
	family   byte
	flags    byte
	count    int
	seed     uint64
}

func (p drawsPreamble) put(buf []byte) {
	buf[0] = byte(p.preLongs)
	buf[1] = p.serVer
	buf[2] = p.family
	buf[3] = p.flags
	binary.LittleEndian.PutUint32(buf[4:], uint32(p.count))
	binary.LittleEndian.PutUint64(buf[8:], p.seed)
}

func readDrawsPreamble(buf []byte) drawsPreamble {
	return drawsPreamble{
		preLongs: int(buf[0]),
		serVer:   buf[1],
		family:   buf[2],
		flags:    buf[3],
		count:    int(binary.LittleEndian.Uint32(buf[4:])),
		seed:     binary.LittleEndian.Uint64(buf[8:]),
	}
}
