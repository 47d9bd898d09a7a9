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

// Package dialect defines the external collaborators §6 of the design
// names: the parsed signature the core reads from, and the per-dialect
// classifier/extractor/data-rebuilder functions (C3, C4, C7) a concrete
// signature format (CAdES, XAdES, PAdES, ASiC-*) must supply. The core
// in package source knows nothing about any particular dialect; it only
// calls through DialectOps.
package dialect

import "github.com/adsig/tscore/pkg/tscore/model"

// SignatureAttribute is an opaque signed or unsigned property of a
// parsed signature. The core never inspects it directly — only a
// Classifier and Extractors implementation for a specific dialect does.
type SignatureAttribute interface {
	// Name is a short, dialect-specific label (a CAdES OID string, or
	// an XAdES local-name) used only for logging.
	Name() string
}

// SignatureScope is one portion of signed content a content/individual
// timestamp can cover (e.g. "the whole document", "detached data object
// N"). It carries a stable id so the builder can emit a
// (scope.ID(), SIGNED_DATA) reference for it.
type SignatureScope interface {
	ID() model.Identifier
}

// ParsedSignature is the external collaborator the core reads from: an
// already-parsed advanced signature exposing its attribute streams in
// document order plus the sources and identities the builder needs.
// The core never calls back into whatever produced this signature.
type ParsedSignature interface {
	// ID is this signature's own stable identifier (referenced by
	// SIGNATURE timestamps and expanded into later ARCHIVE/X1 tokens).
	ID() model.Identifier

	// SignedProperties and UnsignedProperties are in document order.
	SignedProperties() []SignatureAttribute
	UnsignedProperties() []SignatureAttribute

	// CertificateSource, CRLSource and OCSPSource are the signature's
	// own sources, distinct from the timestamp-accumulated aggregates
	// the core builds (§4.4: "resolve in signature cert-source then in
	// timestamp cert-source").
	CertificateSource() *model.ListCertificateSource
	CRLSource() *model.ListRevocationSource
	OCSPSource() *model.ListRevocationSource

	// SigningCertificates are the certificate(s) that produced this
	// signature (invariant 3: every SIGNATURE timestamp references
	// each of them).
	SigningCertificates() []*model.CertificateToken

	// Scopes enumerates the signed-data regions a content timestamp
	// can cover.
	Scopes() []SignatureScope

	// RawSignedContent is the exact octet stream a content timestamp's
	// message imprint was computed over — the signature's eContent.
	RawSignedContent() []byte

	// RawSignatureValue is the CMS SignatureValue octets (the bytes a
	// SignatureTimeStamp's message imprint covers).
	RawSignatureValue() []byte

	// RawCMS is the full DER encoding of the signature's SignedData,
	// the baseline an ArchiveTimeStamp's message imprint is computed
	// over together with every unsigned attribute preceding it.
	RawCMS() []byte

	// EncodedAttribute returns the DER encoding of one unsigned
	// attribute (its full `Attribute ::= SEQUENCE` form, not just the
	// attribute's value octets) for concatenation into an X1/X2/archive
	// message-imprint computation.
	EncodedAttribute(a SignatureAttribute) []byte

	// UnsignedAttributesBefore returns, in document order, every
	// unsigned attribute preceding a — the set a sig-and-refs/refs-only
	// /archive timestamp's message imprint must fold in.
	UnsignedAttributesBefore(a SignatureAttribute) []SignatureAttribute
}

// Classifier maps an attribute to its category. Implementations must
// keep the predicates mutually exclusive per attribute — the builder
// treats a match on more than one predicate as a classifier bug and
// takes whichever branch it dispatches on first.
type Classifier interface {
	IsContentTimestamp(a SignatureAttribute) bool
	IsAllDataObjectsTimestamp(a SignatureAttribute) bool
	IsIndividualDataObjectsTimestamp(a SignatureAttribute) bool
	IsSignatureTimestamp(a SignatureAttribute) bool
	IsCompleteCertificateRef(a SignatureAttribute) bool
	IsAttributeCertificateRef(a SignatureAttribute) bool
	IsCompleteRevocationRef(a SignatureAttribute) bool
	IsAttributeRevocationRef(a SignatureAttribute) bool
	IsRefsOnlyTimestamp(a SignatureAttribute) bool
	IsSigAndRefsTimestamp(a SignatureAttribute) bool
	IsCertificateValues(a SignatureAttribute) bool
	IsRevocationValues(a SignatureAttribute) bool
	IsArchiveTimestamp(a SignatureAttribute) bool
	IsTimeStampValidationData(a SignatureAttribute) bool
}

// Extractors pulls the typed material out of a recognised attribute
// (C4). Every method fails soft: a parse failure returns a non-nil
// error and the builder logs-and-skips rather than aborting.
type Extractors interface {
	// ContentTimestampToken, AllDataObjectsTimestampToken and
	// IndividualDataObjectsTimestampToken parse the attribute's
	// encoded timestamp value into a bare token (references not yet
	// bound — the builder computes those per §4.4 Phase A).
	ContentTimestampToken(a SignatureAttribute) (*model.TimestampToken, error)
	AllDataObjectsTimestampToken(a SignatureAttribute) (*model.TimestampToken, error)
	// IndividualDataObjectsTimestampToken additionally returns the
	// dialect-specific subset of signed scopes this particular
	// attribute covers.
	IndividualDataObjectsTimestampToken(a SignatureAttribute, sig ParsedSignature) (*model.TimestampToken, []SignatureScope, error)

	SignatureTimestampToken(a SignatureAttribute) (*model.TimestampToken, error)
	RefsOnlyTimestampToken(a SignatureAttribute) (*model.TimestampToken, error)
	SigAndRefsTimestampToken(a SignatureAttribute) (*model.TimestampToken, error)
	ArchiveTimestampToken(a SignatureAttribute) (*model.TimestampToken, model.ArchiveSubKind, error)

	CertificateRefDigests(a SignatureAttribute) ([]model.Digest, error)
	RevocationRefDigests(a SignatureAttribute) (crlDigests, ocspDigests []model.Digest, err error)
	CertificateValues(a SignatureAttribute) ([]*model.CertificateToken, error)
	RevocationValues(a SignatureAttribute) (crls, ocsps []*model.RevocationBinary, err error)
	TimestampValidationData(a SignatureAttribute) (certs []*model.CertificateToken, crls, ocsps []*model.RevocationBinary, err error)
}

// DataBuilder reconstructs the exact octet stream a timestamp of a
// given kind was computed over (C7), plus the one piece of dialect
// knowledge the builder and external intake both need independent of
// any single token: the signed-data references an ARCHIVE timestamp (or
// a post-hoc external one) must additionally cover.
type DataBuilder interface {
	ContentTimestampData(tok *model.TimestampToken, sig ParsedSignature) []byte
	SignatureTimestampData(sig ParsedSignature) []byte
	TimestampX1Data(tok *model.TimestampToken, sig ParsedSignature) []byte
	TimestampX2Data(tok *model.TimestampToken, sig ParsedSignature) []byte
	ArchiveTimestampData(tok *model.TimestampToken, sig ParsedSignature) []byte

	// SignedDataReferences returns the dialect-computed references to
	// the underlying signed-data CMS/XML content itself — what
	// invariant 5 of the design calls "the signed-data references
	// reconstructed by the dialect" for an ARCHIVE timestamp, and what
	// §4.6 point 1 calls "the dialect-specific signature-CMS SignedData
	// references" for external intake.
	SignedDataReferences(sig ParsedSignature) []model.TimestampedReference
}

// Ops bundles the three collaborator groups a dialect supplies,
// injected into the core's constructor. The core (package source) never
// imports a concrete dialect package — only this interface bundle.
type Ops struct {
	Classifier  Classifier
	Extractors  Extractors
	DataBuilder DataBuilder
}
