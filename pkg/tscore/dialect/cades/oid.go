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

// Package cades is the concrete CMS/CAdES implementation of
// dialect.Ops — the one dialect this module ships (SPEC_FULL.md §C).
// It recognises attributes by their unsigned-attribute OID, the same
// way pdfcpu's signature validator does.
package cades

import "encoding/asn1"

// id-aa attribute OIDs, reused verbatim from the PAdES/CAdES table the
// teacher's signature validator carries (pkg/pdfcpu/sign/oid.go).
var (
	oidContentTimestamp        = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 20}
	oidCompleteCertificateRefs = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 21}
	oidCompleteRevocationRefs  = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 22}
	oidCertificateValues       = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 23}
	oidRevocationValues        = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 24}
	oidArchiveTimestampV2      = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 27}
	oidTimestampToken          = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 14}

	// The teacher only ever validates PAdES-B/T/LT documents, so it
	// never needs the full CAdES-X long form attributes below; these
	// four are added per SPEC_FULL.md §D from the RFC 5126 id-aa arc
	// (the same 1.2.840.113549.1.9.16.2 branch the teacher's OIDs
	// live under) to complete the taxonomy spec.md names.
	oidAttributeCertificateRefs = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 44}
	oidAttributeRevocationRefs  = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 45}
	oidCAdESCTimestamp          = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 25} // sig-and-refs (X1)
	oidCompleteCertAndRefs      = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 26} // refs-only (X2)

	// ArchiveTimestampV3 uses a distinct OID under the ETSI TS 101 733
	// arc (1.2.840.113549.1.9.16.2.27 is the v2 form the teacher
	// carries under the name oidArchiveTimestamp).
	oidArchiveTimestampV3 = asn1.ObjectIdentifier{0, 4, 0, 1733, 2, 4}

	oidTimestampedCertsCRLs = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 16, 2, 31} // TimeStampValidationData
)
