// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package recommend

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the interaction log together with the model
// parameters that affect a fit. Equal fingerprints mean an identical B.
func Fingerprint(interactions []Interaction, lambda float64, catalogFirst, catalogSize, window int) string {
	h := xxhash.New()
	var buf [8]byte

	putUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:]) //nolint:errcheck // xxhash.Digest.Write never fails
	}

	putUint(math.Float64bits(lambda))
	putUint(uint64(int64(catalogFirst)))
	putUint(uint64(int64(catalogSize)))
	putUint(uint64(int64(window)))
	putUint(uint64(len(interactions)))

	for i := range interactions {
		in := &interactions[i]
		putUint(uint64(in.UserID))
		putUint(uint64(int64(in.ItemID)))
		putUint(uint64(int64(in.Feedback)))
		putUint(uint64(in.Timestamp.UnixNano()))
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
