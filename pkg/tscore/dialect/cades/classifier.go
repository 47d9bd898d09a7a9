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

import "github.com/adsig/tscore/pkg/tscore/dialect"

// Classifier implements dialect.Classifier by comparing each attribute's
// OID against the CMS/CAdES table in oid.go, the same dispatch shape
// the teacher's checkTimestampToken/handleDSS use (pkg/pdfcpu/sign/
// pkcs7.go), generalised from a single fixed OID comparison per call
// site to a standalone predicate per taxonomy member.
type Classifier struct{}

func asAttribute(a dialect.SignatureAttribute) (Attribute, bool) {
	att, ok := a.(Attribute)
	return att, ok
}

func (Classifier) IsContentTimestamp(a dialect.SignatureAttribute) bool {
	att, ok := asAttribute(a)
	return ok && att.OID.Equal(oidContentTimestamp)
}

// IsAllDataObjectsTimestamp and IsIndividualDataObjectsTimestamp always
// report false: CAdES carries no separate OID for "all data objects" or
// "individual data objects" timestamps. A content-timestamp attribute
// is recognised only by IsContentTimestamp, and the builder emits it
// through ContentTimestampToken as a CONTENT token.
func (Classifier) IsAllDataObjectsTimestamp(a dialect.SignatureAttribute) bool {
	return false
}

func (Classifier) IsIndividualDataObjectsTimestamp(a dialect.SignatureAttribute) bool {
	return false
}

func (Classifier) IsSignatureTimestamp(a dialect.SignatureAttribute) bool {
	att, ok := asAttribute(a)
	return ok && att.OID.Equal(oidTimestampToken)
}

func (Classifier) IsCompleteCertificateRef(a dialect.SignatureAttribute) bool {
	att, ok := asAttribute(a)
	return ok && att.OID.Equal(oidCompleteCertificateRefs)
}

func (Classifier) IsAttributeCertificateRef(a dialect.SignatureAttribute) bool {
	att, ok := asAttribute(a)
	return ok && att.OID.Equal(oidAttributeCertificateRefs)
}

func (Classifier) IsCompleteRevocationRef(a dialect.SignatureAttribute) bool {
	att, ok := asAttribute(a)
	return ok && att.OID.Equal(oidCompleteRevocationRefs)
}

func (Classifier) IsAttributeRevocationRef(a dialect.SignatureAttribute) bool {
	att, ok := asAttribute(a)
	return ok && att.OID.Equal(oidAttributeRevocationRefs)
}

func (Classifier) IsRefsOnlyTimestamp(a dialect.SignatureAttribute) bool {
	att, ok := asAttribute(a)
	return ok && att.OID.Equal(oidCompleteCertAndRefs)
}

func (Classifier) IsSigAndRefsTimestamp(a dialect.SignatureAttribute) bool {
	att, ok := asAttribute(a)
	return ok && att.OID.Equal(oidCAdESCTimestamp)
}

func (Classifier) IsCertificateValues(a dialect.SignatureAttribute) bool {
	att, ok := asAttribute(a)
	return ok && att.OID.Equal(oidCertificateValues)
}

func (Classifier) IsRevocationValues(a dialect.SignatureAttribute) bool {
	att, ok := asAttribute(a)
	return ok && att.OID.Equal(oidRevocationValues)
}

func (Classifier) IsArchiveTimestamp(a dialect.SignatureAttribute) bool {
	att, ok := asAttribute(a)
	if !ok {
		return false
	}
	return att.OID.Equal(oidArchiveTimestampV2) || att.OID.Equal(oidArchiveTimestampV3)
}

func (Classifier) IsTimeStampValidationData(a dialect.SignatureAttribute) bool {
	att, ok := asAttribute(a)
	return ok && att.OID.Equal(oidTimestampedCertsCRLs)
}
