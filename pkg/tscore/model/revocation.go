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
	"slices"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ocsp"
)

// RevocationKind distinguishes a CRL binary from an OCSP response.
type RevocationKind int

const (
	RevocationKindCRL RevocationKind = iota
	RevocationKindOCSP
)

func (k RevocationKind) String() string {
	if k == RevocationKindOCSP {
		return "OCSP"
	}
	return "CRL"
}

// RevocationBinary wraps an encapsulated CRL or OCSP response blob with
// its identifier and digest multi-map, mirroring CertificateToken.
type RevocationBinary struct {
	ID         Identifier
	Kind       RevocationKind
	Raw        []byte
	ProducedAt time.Time // only meaningful for OCSP
	digests    map[DigestAlgorithm]Digest
}

// NewRevocationBinary wraps raw bytes of the given kind. For OCSP, the
// bytes are parsed with golang.org/x/crypto/ocsp (the same library the
// teacher uses for live revocation checking) purely to validate
// well-formedness and recover ProducedAt; the response is not matched
// against any particular certificate here since the core never decides
// revocation status — it only collects material. A CRL's bytes are not
// parsed at this layer; x509.ParseRevocationList is reserved for the
// enclosing validator, which actually decides trust.
func NewRevocationBinary(kind RevocationKind, raw []byte) (*RevocationBinary, error) {
	rb := &RevocationBinary{
		ID:      NewEncapsulatedIdentifier(raw),
		Kind:    kind,
		Raw:     raw,
		digests: make(map[DigestAlgorithm]Digest),
	}
	if kind == RevocationKindOCSP {
		resp, err := ocsp.ParseResponse(raw, nil)
		if err != nil {
			return nil, errors.Wrap(err, "parse embedded OCSP response")
		}
		rb.ProducedAt = resp.ProducedAt
	}
	for _, algo := range []DigestAlgorithm{SHA1, SHA256, SHA384, SHA512} {
		if d, ok := ComputeDigest(algo, raw); ok {
			rb.digests[algo] = d
		}
	}
	return rb, nil
}

// DigestMatches reports whether d equals the binary's digest under
// d's own algorithm.
func (r *RevocationBinary) DigestMatches(d Digest) bool {
	got, ok := r.digests[d.Algorithm]
	return ok && got.Equal(d)
}

// RevocationRef references an unrecovered CRL or OCSP entry by digest.
type RevocationRef struct {
	ID     Identifier
	Kind   RevocationKind
	Digest Digest
}

// NewRevocationRef builds a RevocationRef from a digest found in a
// CompleteRevocationRefs/AttributeRevocationRefs attribute.
func NewRevocationRef(kind RevocationKind, d Digest) *RevocationRef {
	return &RevocationRef{ID: NewReferenceIdentifier(d), Kind: kind, Digest: d}
}

// ListRevocationSource is an append-only, digest-indexed collection of
// RevocationBinaries and RevocationRefs of a single kind (CRL or OCSP).
// The source/builder package keeps one instance for CRLs and one for
// OCSP, matching the design notes' "ListCRLSource/ListOCSPSource" split.
type ListRevocationSource struct {
	kind     RevocationKind
	bins     []*RevocationBinary
	byID     map[Identifier]*RevocationBinary
	refs     []*RevocationRef
	refsByID map[Identifier]*RevocationRef
}

// NewListRevocationSource returns an empty source for the given kind.
func NewListRevocationSource(kind RevocationKind) *ListRevocationSource {
	return &ListRevocationSource{
		kind:     kind,
		byID:     make(map[Identifier]*RevocationBinary),
		refsByID: make(map[Identifier]*RevocationRef),
	}
}

// Kind reports whether this source holds CRLs or OCSP responses.
func (s *ListRevocationSource) Kind() RevocationKind { return s.kind }

// Add appends bin unless one with the same ID is already present.
func (s *ListRevocationSource) Add(bin *RevocationBinary) bool {
	if bin == nil {
		return false
	}
	if _, ok := s.byID[bin.ID]; ok {
		return false
	}
	s.byID[bin.ID] = bin
	s.bins = append(s.bins, bin)
	return true
}

// AddRef appends ref unless one with the same ID is already present.
func (s *ListRevocationSource) AddRef(ref *RevocationRef) bool {
	if ref == nil {
		return false
	}
	if _, ok := s.refsByID[ref.ID]; ok {
		return false
	}
	s.refsByID[ref.ID] = ref
	s.refs = append(s.refs, ref)
	return true
}

// FindByDigest returns the binary whose digest under d.Algorithm equals d.
func (s *ListRevocationSource) FindByDigest(d Digest) (*RevocationBinary, bool) {
	for _, b := range s.bins {
		if b.DigestMatches(d) {
			return b, true
		}
	}
	return nil, false
}

// FindRefByDigest returns the ref carrying an equal digest.
func (s *ListRevocationSource) FindRefByDigest(d Digest) (*RevocationRef, bool) {
	for _, r := range s.refs {
		if r.Digest.Equal(d) {
			return r, true
		}
	}
	return nil, false
}

// All returns the accumulated binaries in insertion order.
func (s *ListRevocationSource) All() []*RevocationBinary {
	return slices.Clone(s.bins)
}

// Merge absorbs every binary and ref of other into s, skipping entries
// already present. Panics if kinds differ — callers never merge a CRL
// source into an OCSP one.
func (s *ListRevocationSource) Merge(other *ListRevocationSource) {
	if other == nil {
		return
	}
	if other.kind != s.kind {
		panic("tscore: cannot merge revocation sources of different kinds")
	}
	for _, b := range other.bins {
		s.Add(b)
	}
	for _, r := range other.refs {
		s.AddRef(r)
	}
}
