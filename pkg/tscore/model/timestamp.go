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

import "sync"

// Kind classifies a TimestampToken per §3 of the design.
type Kind int

const (
	Content Kind = iota
	AllDataObjects
	IndividualDataObjects
	Signature
	ValidationDataRefsOnly
	ValidationData
	Archive
	Document
)

func (k Kind) String() string {
	switch k {
	case Content:
		return "CONTENT"
	case AllDataObjects:
		return "ALL_DATA_OBJECTS"
	case IndividualDataObjects:
		return "INDIVIDUAL_DATA_OBJECTS"
	case Signature:
		return "SIGNATURE"
	case ValidationDataRefsOnly:
		return "VALIDATION_DATA_REFSONLY"
	case ValidationData:
		return "VALIDATION_DATA"
	case Archive:
		return "ARCHIVE"
	case Document:
		return "DOCUMENT"
	default:
		return "UNKNOWN"
	}
}

// ArchiveSubKind is only meaningful when Kind == Archive; a dialect
// without sub-variants of its archive timestamp leaves it at None.
type ArchiveSubKind int

const (
	ArchiveSubKindNone ArchiveSubKind = iota
	ArchiveTimestampV2
	ArchiveTimestampV3
)

// MatchResult is the outcome of comparing a rebuilt octet stream's
// digest to a token's message imprint (§4.8's state machine).
type MatchResult int

const (
	MatchUnset MatchResult = iota
	Matched
	Mismatched
)

func (m MatchResult) String() string {
	switch m {
	case Matched:
		return "matched"
	case Mismatched:
		return "mismatched"
	default:
		return "unset"
	}
}

// TimestampToken is the central entity of the design: a classified
// timestamp together with the exact set of references it covers.
//
// A token is created once by the builder (see TimestampSource.build in
// package source) with its
// reference list still empty, then bound exactly once via
// BindReferences before it is published on any of the five classified
// lists. After that, the only permitted mutations are MatchData
// (validator driver) and AppendReferences (external-timestamp intake,
// archive tokens only).
type TimestampToken struct {
	id             Identifier
	kind           Kind
	archiveSubKind ArchiveSubKind
	certificates   []*CertificateToken
	crlSource      *ListRevocationSource
	ocspSource     *ListRevocationSource
	messageImprint Digest

	mu          sync.Mutex
	refs        *ReferenceSet
	processed   bool
	matchResult MatchResult
}

// NewTimestampToken constructs a token from material an extractor (C4)
// recovered from a signature attribute. Its timestamped-reference list
// starts empty; the builder fills it via BindReferences once it knows
// the correct covered set for this token's position in document order.
func NewTimestampToken(id Identifier, kind Kind, imprint Digest, certs []*CertificateToken) *TimestampToken {
	return &TimestampToken{
		id:             id,
		kind:           kind,
		certificates:   append([]*CertificateToken(nil), certs...),
		crlSource:      NewListRevocationSource(RevocationKindCRL),
		ocspSource:     NewListRevocationSource(RevocationKindOCSP),
		messageImprint: imprint,
		refs:           NewReferenceSet(),
	}
}

func (t *TimestampToken) ID() Identifier { return t.id }

// EnsureID assigns a provisional identifier if this token was
// constructed with id == "" and returns the id in effect afterward.
// External-timestamp intake (C9) is the one path that can receive a
// token before its own digest is known; every other constructor call
// in this module passes a real id.
func (t *TimestampToken) EnsureID() Identifier {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.id == "" {
		t.id = NewProvisionalIdentifier()
	}
	return t.id
}

func (t *TimestampToken) Kind() Kind { return t.kind }
func (t *TimestampToken) ArchiveSubKind() ArchiveSubKind { return t.archiveSubKind }
func (t *TimestampToken) MessageImprint() Digest { return t.messageImprint }
func (t *TimestampToken) CRLSource() *ListRevocationSource { return t.crlSource }
func (t *TimestampToken) OCSPSource() *ListRevocationSource {
	return t.ocspSource
}

// Certificates returns the certificates embedded in this particular
// timestamp token (not the aggregate timestamp certificate source).
func (t *TimestampToken) Certificates() []*CertificateToken {
	return append([]*CertificateToken(nil), t.certificates...)
}

// TimestampedReferences returns a snapshot of the covered-reference set
// in insertion order (invariant 1 of the design: duplicate-free).
func (t *TimestampToken) TimestampedReferences() []TimestampedReference {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refs.Slice()
}

// SetArchiveSubKind records the dialect-specific archive variant. Only
// meaningful for Kind == Archive; a no-op call on another kind is
// harmless but pointless.
func (t *TimestampToken) SetArchiveSubKind(sub ArchiveSubKind) {
	t.archiveSubKind = sub
}

// BindReferences freezes this token's covered-reference set at the
// moment the builder emits it. Intended to be called exactly once, by
// the builder, before the token is appended to any classified list;
// extra calls before the first read are harmless (they just replace the
// still-private set) but a call after the token has been published is a
// builder bug, not a case this type needs to guard against given the
// single-threaded build contract of §5.
func (t *TimestampToken) BindReferences(refs []TimestampedReference) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.refs = NewReferenceSetFrom(refs)
}

// AppendReferences extends the covered-reference set post-hoc. Used
// solely by external-timestamp intake (C9) to enrich an externally
// supplied ARCHIVE token after it has already been bound.
func (t *TimestampToken) AppendReferences(refs []TimestampedReference) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.refs.AddMany(refs)
}

// Processed reports whether MatchData has already run to completion.
func (t *TimestampToken) Processed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.processed
}

// MatchResult reports the outcome of the last MatchData call, or
// MatchUnset if none has run yet.
func (t *TimestampToken) MatchResult() MatchResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.matchResult
}

// MatchData implements the state machine of §4.8: it digests data with
// the token's message-imprint algorithm and compares the result to the
// stored imprint. A second call is a no-op that returns the result
// already recorded — both created->matched and created->mismatched are
// absorbing states.
func (t *TimestampToken) MatchData(data []byte) MatchResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.processed {
		return t.matchResult
	}
	t.processed = true
	got, ok := ComputeDigest(t.messageImprint.Algorithm, data)
	if ok && got.Equal(t.messageImprint) {
		t.matchResult = Matched
	} else {
		t.matchResult = Mismatched
	}
	return t.matchResult
}
