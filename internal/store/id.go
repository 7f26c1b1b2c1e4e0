package store

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"regexp"
	"sync/atomic"
	"time"
)

// IDLength is the length of a hex encoded document id.
const IDLength = 24

var idPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// IsObjectID reports whether s looks like an id issued by an IDGenerator.
func IsObjectID(s string) bool {
	return idPattern.MatchString(s)
}

// IDGenerator issues 12-byte document ids rendered as 24 lowercase hex chars:
// 4 bytes of unix seconds, 5 bytes of per-process randomness and a 3 byte
// counter. Two ids from the same generator can only collide after 2^24 ids
// within one second.
type IDGenerator struct {
	process [5]byte
	counter uint32
	now     func() time.Time
}

// NewIDGenerator seeds a generator from crypto/rand.
func NewIDGenerator() (*IDGenerator, error) {
	g := &IDGenerator{now: time.Now}
	if _, err := rand.Read(g.process[:]); err != nil {
		return nil, fmt.Errorf("seeding id generator: %w", err)
	}
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("seeding id generator: %w", err)
	}
	g.counter = binary.BigEndian.Uint32(seed[:]) & 0xffffff
	return g, nil
}

// Next returns a fresh id.
func (g *IDGenerator) Next() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(g.now().Unix()))
	copy(b[4:9], g.process[:])
	c := atomic.AddUint32(&g.counter, 1)
	b[9] = byte(c >> 16)
	b[10] = byte(c >> 8)
	b[11] = byte(c)
	return hex.EncodeToString(b[:])
}
