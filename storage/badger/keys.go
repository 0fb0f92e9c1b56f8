package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/servit/core"
)

// Key prefixes per stored value kind.
const (
	serviceRecordPrefix    = "serrec"
	serviceRecordPosPrefix = "serrecp"
)

// makeServiceRecordKey builds the primary key for a record.
func makeServiceRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", serviceRecordPrefix, id))
}

// positionIndexPrefix is the key range holding every position index
// entry.
func positionIndexPrefix() []byte {
	return []byte(serviceRecordPosPrefix + ":")
}

// makePositionKey builds a listing position index key. The position is
// encoded big-endian so BadgerDB's lexicographic key order matches listing
// order.
func makePositionKey(position uint64) []byte {
	prefix := positionIndexPrefix()
	key := make([]byte, len(prefix)+8)
	n := copy(key, prefix)
	binary.BigEndian.PutUint64(key[n:], position)
	return key
}

// makeCheckpointKey builds the key for a named job checkpoint.
func makeCheckpointKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:chkpt", name))
}
