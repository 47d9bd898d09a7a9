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

import "encoding/asn1"

// Attribute is the dialect.SignatureAttribute implementation for CMS:
// an unsigned or signed attribute as it appears in a SignerInfo,
// carrying its raw attrValues[0] DER encoding for the extractor to
// unmarshal once classified.
type Attribute struct {
	OID   asn1.ObjectIdentifier
	Value []byte
}

// Name implements dialect.SignatureAttribute.
func (a Attribute) Name() string { return a.OID.String() }
