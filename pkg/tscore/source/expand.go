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

package source

import "github.com/adsig/tscore/pkg/tscore/model"

// expandPriorTimestamp implements §4.5: when a later timestamp covers
// an earlier one T, it gains (T.id, TIMESTAMP), every entry of
// T.timestampedReferences, and (c.id, CERTIFICATE) for every
// certificate embedded in T. The caller folds the result into a
// ReferenceSet, so duplicates across multiple prior timestamps collapse
// for free.
func expandPriorTimestamp(t *model.TimestampToken) []model.TimestampedReference {
	refs := t.TimestampedReferences()
	out := make([]model.TimestampedReference, 0, len(refs)+1+len(t.Certificates()))
	out = append(out, model.TimestampedReference{ReferencedID: t.ID(), Type: model.TimestampObject})
	out = append(out, refs...)
	for _, c := range t.Certificates() {
		out = append(out, model.TimestampedReference{ReferencedID: c.ID, Type: model.CertificateObject})
	}
	return out
}
