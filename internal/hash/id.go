package hash

import "github.com/cespare/xxhash/v2"

// DictionaryID computes the xxHash64 fingerprint of a preset dictionary.
// Compressor and decompressor sides can compare fingerprints to confirm
// they were primed with the same bytes before debugging stream errors.
func DictionaryID(dict []byte) uint64 {
	return xxhash.Sum64(dict)
}
