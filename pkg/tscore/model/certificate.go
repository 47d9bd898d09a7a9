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
	"bytes"
	"crypto/x509"
	"slices"
)

// CertificateToken is a parsed X.509 certificate plus the bookkeeping
// the timestamp source needs: a stable identifier and a digest
// multi-map keyed by algorithm, so a CertificateRef found inside a
// later attribute can be matched against it without re-hashing the raw
// bytes on every lookup. Immutable once produced by NewCertificateToken.
type CertificateToken struct {
	ID          Identifier
	Certificate *x509.Certificate
	Raw         []byte
	SelfSigned  bool
	digests     map[DigestAlgorithm]Digest
}

// NewCertificateToken wraps an already-parsed certificate. raw is the
// DER encoding the certificate was extracted from (usually cert.Raw,
// passed explicitly so the caller controls exactly which bytes are
// hashed for identity).
func NewCertificateToken(raw []byte, cert *x509.Certificate) *CertificateToken {
	ct := &CertificateToken{
		ID:          NewEncapsulatedIdentifier(raw),
		Certificate: cert,
		Raw:         raw,
		digests:     make(map[DigestAlgorithm]Digest),
	}
	ct.SelfSigned = bytes.Equal(cert.RawIssuer, cert.RawSubject) && cert.CheckSignatureFrom(cert) == nil
	for _, algo := range []DigestAlgorithm{SHA1, SHA256, SHA384, SHA512} {
		if d, ok := ComputeDigest(algo, raw); ok {
			ct.digests[algo] = d
		}
	}
	return ct
}

// DigestMatches reports whether d equals the token's digest under d's
// own algorithm.
func (c *CertificateToken) DigestMatches(d Digest) bool {
	got, ok := c.digests[d.Algorithm]
	return ok && got.Equal(d)
}

// DigestFor returns the token's precomputed digest under algo.
func (c *CertificateToken) DigestFor(algo DigestAlgorithm) (Digest, bool) {
	d, ok := c.digests[algo]
	return d, ok
}

// CertificateRef references an unrecovered certificate by digest —
// the certificate's bytes were never encapsulated in the signature,
// only a digest of them.
type CertificateRef struct {
	ID     Identifier
	Digest Digest
}

// NewCertificateRef builds a CertificateRef from a digest found in a
// CompleteCertificateRefs/AttributeCertificateRefs attribute.
func NewCertificateRef(d Digest) *CertificateRef {
	return &CertificateRef{ID: NewReferenceIdentifier(d), Digest: d}
}

// ListCertificateSource is an append-only, digest-indexed collection of
// CertificateTokens and CertificateRefs (C5 of the design). Entries
// never disappear once added; dedup is by Identifier.
type ListCertificateSource struct {
	tokens   []*CertificateToken
	byID     map[Identifier]*CertificateToken
	refs     []*CertificateRef
	refsByID map[Identifier]*CertificateRef
}

// NewListCertificateSource returns an empty source.
func NewListCertificateSource() *ListCertificateSource {
	return &ListCertificateSource{
		byID:     make(map[Identifier]*CertificateToken),
		refsByID: make(map[Identifier]*CertificateRef),
	}
}

// Add appends tok unless a token with the same ID is already present.
// Reports whether it was newly added.
func (s *ListCertificateSource) Add(tok *CertificateToken) bool {
	if tok == nil {
		return false
	}
	if _, ok := s.byID[tok.ID]; ok {
		return false
	}
	s.byID[tok.ID] = tok
	s.tokens = append(s.tokens, tok)
	return true
}

// AddRef appends ref unless one with the same ID is already present.
func (s *ListCertificateSource) AddRef(ref *CertificateRef) bool {
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

// FindByDigest returns the token whose digest under d.Algorithm equals d.
func (s *ListCertificateSource) FindByDigest(d Digest) (*CertificateToken, bool) {
	for _, t := range s.tokens {
		if t.DigestMatches(d) {
			return t, true
		}
	}
	return nil, false
}

// FindRefByDigest returns the ref carrying an equal digest.
func (s *ListCertificateSource) FindRefByDigest(d Digest) (*CertificateRef, bool) {
	for _, r := range s.refs {
		if r.Digest.Equal(d) {
			return r, true
		}
	}
	return nil, false
}

// All returns the accumulated certificate tokens in insertion order.
func (s *ListCertificateSource) All() []*CertificateToken {
	return slices.Clone(s.tokens)
}

// Merge absorbs every token and ref of other into s, preserving s's
// existing order and skipping anything already present (monotonic
// growth, invariant 6 of the design).
func (s *ListCertificateSource) Merge(other *ListCertificateSource) {
	if other == nil {
		return
	}
	for _, t := range other.tokens {
		s.Add(t)
	}
	for _, r := range other.refs {
		s.AddRef(r)
	}
}
