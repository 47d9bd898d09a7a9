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

// AddExternalTimestamp implements C9 (§4.6): accepts a post-hoc ARCHIVE
// timestamp, enriches its covered-reference set, absorbs its
// certificates, and appends it to the archive list. Any other kind
// fails with model.ErrUnsupportedExternalTimestampKind — the one error
// this module ever returns to a caller (§7).
//
// Triggers the one-shot build first if it hasn't run yet, then
// serialises the append against any other call via the source's mutex.
// Callers iterating CertificateSource/CRLSource/OCSPSource concurrently
// must still serialise with this call themselves (§5) — the mutex here
// only protects this module's own bookkeeping.
func (s *TimestampSource) AddExternalTimestamp(tok *model.TimestampToken) error {
	s.ensureBuilt()

	if tok.Kind() != model.Archive {
		return model.ErrUnsupportedExternalTimestampKind
	}
	tok.EnsureID()

	s.mu.Lock()
	defer s.mu.Unlock()

	prior := s.allKnownTimestampsLocked()

	refs := model.NewReferenceSet()
	refs.AddMany(s.ops.DataBuilder.SignedDataReferences(s.sig))
	for _, t := range prior {
		refs.AddMany(expandPriorTimestamp(t))
	}
	tok.AppendReferences(refs.Slice())

	s.absorbTimestamp(tok)
	s.archiveTimestamps = append(s.archiveTimestamps, tok)

	s.validateOne(tok)

	return nil
}

// allKnownTimestampsLocked returns every timestamp discovered so far
// across all five lists, for P7's "every timestamp T that existed
// before intake". Must be called with s.mu held.
func (s *TimestampSource) allKnownTimestampsLocked() []*model.TimestampToken {
	all := make([]*model.TimestampToken, 0, len(s.contentTimestamps)+len(s.signatureTimestamps)+len(s.x1Timestamps)+len(s.x2Timestamps)+len(s.archiveTimestamps))
	all = append(all, s.contentTimestamps...)
	all = append(all, s.signatureTimestamps...)
	all = append(all, s.x1Timestamps...)
	all = append(all, s.x2Timestamps...)
	all = append(all, s.archiveTimestamps...)
	return all
}
