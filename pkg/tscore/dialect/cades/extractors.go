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
	"encoding/asn1"
	"time"

	"github.com/hhrutter/pkcs7"
	"github.com/pkg/errors"

	"github.com/adsig/tscore/pkg/tscore/dialect"
	"github.com/adsig/tscore/pkg/tscore/model"
)

// algorithmIdentifier and tstInfo mirror the ASN.1 shape the teacher
// decodes in pkg/pdfcpu/sign/dts.go's TSTInfo — reused unchanged since
// RFC 3161's TSTInfo is the wire format regardless of which advanced
// signature format embeds the token.
type algorithmIdentifier struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.RawValue `asn1:"tag:0,optional"`
}

type tstInfo struct {
	Version        int
	Policy         asn1.ObjectIdentifier
	MessageImprint struct {
		HashAlgorithm algorithmIdentifier
		HashedMessage []byte
	}
	SerialNumber asn1.RawValue
	GenTime      time.Time
	Accuracy     asn1.RawValue `asn1:"optional"`
	Ordering     bool          `asn1:"optional"`
	Nonce        asn1.RawValue `asn1:"optional"`
	TSA          asn1.RawValue `asn1:"optional"`
	Extensions   asn1.RawValue `asn1:"optional"`
}

// Extractors implements dialect.Extractors for CMS/CAdES attributes,
// grounded on the teacher's checkTimestampToken/handleTimestampToken
// (pkg/pdfcpu/sign/pkcs7.go) and ValidateDTS (pkg/pdfcpu/sign/dts.go):
// both unwrap a degenerate PKCS#7 SignedData carrying a TSTInfo via
// github.com/hhrutter/pkcs7, exactly as done here.
type Extractors struct{}

func parseToken(raw []byte) (*pkcs7.PKCS7, *tstInfo, error) {
	p7, err := pkcs7.Parse(raw)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parse timestamp token")
	}
	var ti tstInfo
	if _, err := asn1.Unmarshal(p7.Content, &ti); err != nil {
		return nil, nil, errors.Wrap(err, "unmarshal TSTInfo")
	}
	return p7, &ti, nil
}

func tokenFromAttribute(id model.Identifier, kind model.Kind, raw []byte) (*model.TimestampToken, error) {
	p7, ti, err := parseToken(raw)
	if err != nil {
		return nil, &model.MalformedAttributeError{OID: "timestampToken", Cause: err}
	}
	algo, ok := model.DigestAlgorithmForOID(ti.MessageImprint.HashAlgorithm.Algorithm)
	if !ok {
		return nil, &model.MalformedAttributeError{OID: "timestampToken", Cause: errors.New("unrecognised message-imprint algorithm")}
	}
	imprint := model.Digest{Algorithm: algo, Value: ti.MessageImprint.HashedMessage}
	certs := make([]*model.CertificateToken, 0, len(p7.Certificates))
	for _, c := range p7.Certificates {
		certs = append(certs, model.NewCertificateToken(c.Raw, c))
	}
	return model.NewTimestampToken(id, kind, imprint, certs), nil
}

func (Extractors) ContentTimestampToken(a dialect.SignatureAttribute) (*model.TimestampToken, error) {
	att, ok := asAttribute(a)
	if !ok {
		return nil, &model.MalformedAttributeError{OID: a.Name()}
	}
	return tokenFromAttribute(model.NewEncapsulatedIdentifier(att.Value), model.Content, att.Value)
}

func (Extractors) AllDataObjectsTimestampToken(a dialect.SignatureAttribute) (*model.TimestampToken, error) {
	att, ok := asAttribute(a)
	if !ok {
		return nil, &model.MalformedAttributeError{OID: a.Name()}
	}
	return tokenFromAttribute(model.NewEncapsulatedIdentifier(att.Value), model.AllDataObjects, att.Value)
}

// IndividualDataObjectsTimestampToken never fires for this dialect: a
// CAdES content timestamp always covers the signature's entire signed
// content in one go (there is no per-object content timestamp variant
// in CMS), so CAdES content timestamps all come from
// ContentTimestampToken as CONTENT tokens. The method exists to satisfy dialect.Extractors
// for formats (ASiC, XAdES with multiple data objects) that do need it.
func (Extractors) IndividualDataObjectsTimestampToken(a dialect.SignatureAttribute, sig dialect.ParsedSignature) (*model.TimestampToken, []dialect.SignatureScope, error) {
	return nil, nil, &model.UnknownAttributeError{OID: a.Name()}
}

func (Extractors) SignatureTimestampToken(a dialect.SignatureAttribute) (*model.TimestampToken, error) {
	att, ok := asAttribute(a)
	if !ok {
		return nil, &model.MalformedAttributeError{OID: a.Name()}
	}
	return tokenFromAttribute(model.NewEncapsulatedIdentifier(att.Value), model.Signature, att.Value)
}

func (Extractors) RefsOnlyTimestampToken(a dialect.SignatureAttribute) (*model.TimestampToken, error) {
	att, ok := asAttribute(a)
	if !ok {
		return nil, &model.MalformedAttributeError{OID: a.Name()}
	}
	return tokenFromAttribute(model.NewEncapsulatedIdentifier(att.Value), model.ValidationDataRefsOnly, att.Value)
}

func (Extractors) SigAndRefsTimestampToken(a dialect.SignatureAttribute) (*model.TimestampToken, error) {
	att, ok := asAttribute(a)
	if !ok {
		return nil, &model.MalformedAttributeError{OID: a.Name()}
	}
	return tokenFromAttribute(model.NewEncapsulatedIdentifier(att.Value), model.ValidationData, att.Value)
}

func (Extractors) ArchiveTimestampToken(a dialect.SignatureAttribute) (*model.TimestampToken, model.ArchiveSubKind, error) {
	att, ok := asAttribute(a)
	if !ok {
		return nil, model.ArchiveSubKindNone, &model.MalformedAttributeError{OID: a.Name()}
	}
	tok, err := tokenFromAttribute(model.NewEncapsulatedIdentifier(att.Value), model.Archive, att.Value)
	if err != nil {
		return nil, model.ArchiveSubKindNone, err
	}
	sub := model.ArchiveTimestampV2
	if att.OID.Equal(oidArchiveTimestampV3) {
		sub = model.ArchiveTimestampV3
	}
	return tok, sub, nil
}

// otherCertID / crlOcspRef mirror the OtherCertID/CrlOcspRef sequences
// RFC 5126 defines for CompleteCertificateRefs/CompleteRevocationRefs;
// only the digest each entry carries matters to this module.
type otherHash struct {
	Algorithm algorithmIdentifier
	HashValue []byte
}

type otherCertID struct {
	OtherCertHash otherHash
}

func (Extractors) CertificateRefDigests(a dialect.SignatureAttribute) ([]model.Digest, error) {
	att, ok := asAttribute(a)
	if !ok {
		return nil, &model.MalformedAttributeError{OID: a.Name()}
	}
	var refs []otherCertID
	if _, err := asn1.Unmarshal(att.Value, &refs); err != nil {
		return nil, &model.MalformedAttributeError{OID: a.Name(), Cause: err}
	}
	out := make([]model.Digest, 0, len(refs))
	for _, r := range refs {
		algo, ok := model.DigestAlgorithmForOID(r.OtherCertHash.Algorithm.Algorithm)
		if !ok {
			continue
		}
		out = append(out, model.Digest{Algorithm: algo, Value: r.OtherCertHash.HashValue})
	}
	return out, nil
}

type crlOcspRef struct {
	CrlIDs  []otherHash `asn1:"optional,tag:0"`
	OcspIDs []otherHash `asn1:"optional,tag:1"`
}

func (Extractors) RevocationRefDigests(a dialect.SignatureAttribute) (crlDigests, ocspDigests []model.Digest, err error) {
	att, ok := asAttribute(a)
	if !ok {
		return nil, nil, &model.MalformedAttributeError{OID: a.Name()}
	}
	var refs []crlOcspRef
	if _, uerr := asn1.Unmarshal(att.Value, &refs); uerr != nil {
		return nil, nil, &model.MalformedAttributeError{OID: a.Name(), Cause: uerr}
	}
	for _, r := range refs {
		for _, h := range r.CrlIDs {
			if algo, ok := model.DigestAlgorithmForOID(h.Algorithm.Algorithm); ok {
				crlDigests = append(crlDigests, model.Digest{Algorithm: algo, Value: h.HashValue})
			}
		}
		for _, h := range r.OcspIDs {
			if algo, ok := model.DigestAlgorithmForOID(h.Algorithm.Algorithm); ok {
				ocspDigests = append(ocspDigests, model.Digest{Algorithm: algo, Value: h.HashValue})
			}
		}
	}
	return crlDigests, ocspDigests, nil
}

func (Extractors) CertificateValues(a dialect.SignatureAttribute) ([]*model.CertificateToken, error) {
	att, ok := asAttribute(a)
	if !ok {
		return nil, &model.MalformedAttributeError{OID: a.Name()}
	}
	var raws []asn1.RawValue
	if _, err := asn1.Unmarshal(att.Value, &raws); err != nil {
		return nil, &model.MalformedAttributeError{OID: a.Name(), Cause: err}
	}
	out := make([]*model.CertificateToken, 0, len(raws))
	for _, rv := range raws {
		cert, err := parseCertificate(rv.FullBytes)
		if err != nil {
			continue
		}
		out = append(out, model.NewCertificateToken(rv.FullBytes, cert))
	}
	return out, nil
}

// revocationValues mirrors RFC 5126's RevocationValues SEQUENCE
// (crlVals, ocspVals, otherRevVals — the last ignored here, same as
// the teacher's revocationInfoArchival handling of OtherRevInfo).
type revocationValues struct {
	CrlVals  []asn1.RawValue `asn1:"optional,tag:0"`
	OcspVals []asn1.RawValue `asn1:"optional,tag:1"`
}

func (Extractors) RevocationValues(a dialect.SignatureAttribute) (crls, ocsps []*model.RevocationBinary, err error) {
	att, ok := asAttribute(a)
	if !ok {
		return nil, nil, &model.MalformedAttributeError{OID: a.Name()}
	}
	var rv revocationValues
	if _, uerr := asn1.Unmarshal(att.Value, &rv); uerr != nil {
		return nil, nil, &model.MalformedAttributeError{OID: a.Name(), Cause: uerr}
	}
	for _, c := range rv.CrlVals {
		if bin, berr := model.NewRevocationBinary(model.RevocationKindCRL, c.FullBytes); berr == nil {
			crls = append(crls, bin)
		}
	}
	for _, o := range rv.OcspVals {
		if bin, berr := model.NewRevocationBinary(model.RevocationKindOCSP, o.FullBytes); berr == nil {
			ocsps = append(ocsps, bin)
		}
	}
	return crls, ocsps, nil
}

// timeStampValidationData mirrors RFC 5126's TimeStampValidationData:
// certs and crls/ocsps alongside the archive timestamp that needs them
// resolved locally instead of via a further round of refs-only lookups.
type timeStampValidationData struct {
	Certs []asn1.RawValue   `asn1:"optional,tag:0"`
	Crls  revocationValues  `asn1:"optional,tag:1"`
}

func (Extractors) TimestampValidationData(a dialect.SignatureAttribute) (certs []*model.CertificateToken, crls, ocsps []*model.RevocationBinary, err error) {
	att, ok := asAttribute(a)
	if !ok {
		return nil, nil, nil, &model.MalformedAttributeError{OID: a.Name()}
	}
	var tsvd timeStampValidationData
	if _, uerr := asn1.Unmarshal(att.Value, &tsvd); uerr != nil {
		return nil, nil, nil, &model.MalformedAttributeError{OID: a.Name(), Cause: uerr}
	}
	for _, rv := range tsvd.Certs {
		cert, cerr := parseCertificate(rv.FullBytes)
		if cerr != nil {
			continue
		}
		certs = append(certs, model.NewCertificateToken(rv.FullBytes, cert))
	}
	for _, c := range tsvd.Crls.CrlVals {
		if bin, berr := model.NewRevocationBinary(model.RevocationKindCRL, c.FullBytes); berr == nil {
			crls = append(crls, bin)
		}
	}
	for _, o := range tsvd.Crls.OcspVals {
		if bin, berr := model.NewRevocationBinary(model.RevocationKindOCSP, o.FullBytes); berr == nil {
			ocsps = append(ocsps, bin)
		}
	}
	return certs, crls, ocsps, nil
}
