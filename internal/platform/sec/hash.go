// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a stable, non-reversible hex digest of the given parts.
//
// Used for throttle keys so that raw client IPs and login identifiers never
// land in Redis.
func Fingerprint(parts ...string) string {
	sum := blake2b.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:16])
}
