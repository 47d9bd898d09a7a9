/*
Copyright 2025 The pdfcpu Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package model

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// Identifier is an opaque stable string identity for a certificate, a
// revocation entry, a reference, or a timestamp. Equality defines
// identity, so two Identifiers compare equal with plain ==.
type Identifier string

// NewEncapsulatedIdentifier derives the identity of an encapsulated
// value (a certificate or a CRL/OCSP binary) from its raw bytes.
func NewEncapsulatedIdentifier(raw []byte) Identifier {
	sum := sha256.Sum256(raw)
	return Identifier("val:" + hex.EncodeToString(sum[:]))
}

// NewReferenceIdentifier derives the identity of an unrecovered
// reference (a CertificateRef or RevocationRef) from the digest it
// carries — a digest-of-digest, since the referenced binary itself is
// not in hand.
func NewReferenceIdentifier(d Digest) Identifier {
	h := sha256.New()
	h.Write([]byte(d.Algorithm.String()))
	h.Write(d.Value)
	return Identifier("ref:" + hex.EncodeToString(h.Sum(nil)))
}

// NewProvisionalIdentifier mints a temporary identity for a token whose
// own digest isn't known yet (see AddExternalTimestamp — an inbound
// external timestamp may need an identifier before its message imprint
// has been validated). Nothing in this module replaces it later: the
// token keeps it as its id. It is never derived from, or compared
// against, content.
func NewProvisionalIdentifier() Identifier {
	return Identifier("tmp:" + uuid.NewString())
}
