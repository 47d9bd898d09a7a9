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

import (
	"github.com/adsig/tscore/pkg/log"
	"github.com/adsig/tscore/pkg/tscore/model"
)

// validateAll runs C7+C8 over every timestamp discovered by build: for
// each token, rebuild the exact octets it was computed over per its
// kind, then ask it to match its message imprint against them. Mirrors
// the teacher's checkDTSDigest (pkg/pdfcpu/sign/dts.go), generalised
// from PAdES's single ETSI.RFC3161 case to the full kind taxonomy.
func (s *TimestampSource) validateAll() {
	for _, t := range s.contentTimestamps {
		s.validateOne(t)
	}
	for _, t := range s.signatureTimestamps {
		s.validateOne(t)
	}
	for _, t := range s.x1Timestamps {
		s.validateOne(t)
	}
	for _, t := range s.x2Timestamps {
		s.validateOne(t)
	}
	for _, t := range s.archiveTimestamps {
		s.validateOne(t)
	}
}

// validateOne rebuilds data for a single token and matches it. Already-
// processed tokens are skipped before the (potentially expensive)
// rebuild runs, not merely left to MatchData's no-op — this is what
// lets AddExternalTimestamp validate an incoming archive token without
// re-rebuilding every archive token discovered at construction time.
func (s *TimestampSource) validateOne(t *model.TimestampToken) {
	if t.Processed() {
		return
	}
	db := s.ops.DataBuilder
	var data []byte
	switch t.Kind() {
	case model.Content, model.AllDataObjects, model.IndividualDataObjects:
		data = db.ContentTimestampData(t, s.sig)
	case model.Signature:
		data = db.SignatureTimestampData(s.sig)
	case model.ValidationData:
		data = db.TimestampX1Data(t, s.sig)
	case model.ValidationDataRefsOnly:
		data = db.TimestampX2Data(t, s.sig)
	case model.Archive:
		data = db.ArchiveTimestampData(t, s.sig)
	case model.Document:
		return
	default:
		return
	}
	result := t.MatchData(data)
	if result == model.Mismatched {
		log.Debug.Printf("tscore: timestamp %s (%s) message imprint mismatch", t.ID(), t.Kind())
	}
}
