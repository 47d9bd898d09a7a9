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

// ObjectType classifies what a TimestampedReference points at.
type ObjectType int

const (
	SignedDataObject ObjectType = iota
	SignatureObject
	CertificateObject
	RevocationObject
	TimestampObject
)

func (t ObjectType) String() string {
	switch t {
	case SignedDataObject:
		return "SIGNED_DATA"
	case SignatureObject:
		return "SIGNATURE"
	case CertificateObject:
		return "CERTIFICATE"
	case RevocationObject:
		return "REVOCATION"
	case TimestampObject:
		return "TIMESTAMP"
	default:
		return "UNKNOWN"
	}
}

// TimestampedReference is a logical pointer to an object a given
// timestamp cryptographically covers. Equality is structural.
type TimestampedReference struct {
	ReferencedID Identifier
	Type         ObjectType
}
