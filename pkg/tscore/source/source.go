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

// Package source is the core of the module: given a parsed advanced
// signature and a dialect.Ops implementation, it discovers, classifies
// and validates every embedded timestamp token, lazily and at most
// once, the way the teacher's ValidateDTS/ValidatePKCS7Signatures lazily
// parse and validate a signature's embedded timestamp on first need —
// generalised here from a single PAdES timestamp to the full CAdES/
// XAdES/PAdES/ASiC taxonomy behind an injected dialect.Ops.
package source

import (
	"sync"
	"time"

	"github.com/adsig/tscore/pkg/tscore/dialect"
	"github.com/adsig/tscore/pkg/tscore/model"
)

// TimestampSource is the central type of this module (the "core" of
// SPEC_FULL.md). Construct one per parsed signature with New, then call
// any accessor; the first call anywhere triggers the one-shot build.
type TimestampSource struct {
	sig    dialect.ParsedSignature
	ops    dialect.Ops
	config *model.Configuration

	once sync.Once
	mu   sync.Mutex

	contentTimestamps   []*model.TimestampToken
	signatureTimestamps []*model.TimestampToken
	x1Timestamps        []*model.TimestampToken // sig-and-refs (VALIDATION_DATA)
	x2Timestamps        []*model.TimestampToken // refs-only (VALIDATION_DATA_REFSONLY)
	archiveTimestamps   []*model.TimestampToken

	certSource *model.ListCertificateSource
	crlSource  *model.ListRevocationSource
	ocspSource *model.ListRevocationSource

	builtAt time.Time
}

// New constructs a source over sig using ops. cfg may be nil, in which
// case model.NewDefaultConfiguration() is used. Per the design notes'
// "cyclic references between a signature and its timestamp source"
// concern, the source stores only sig itself (the borrowed collaborator
// interface) — it never reaches back into whatever produced it.
func New(sig dialect.ParsedSignature, ops dialect.Ops, cfg *model.Configuration) *TimestampSource {
	if cfg == nil {
		cfg = model.NewDefaultConfiguration()
	}
	return &TimestampSource{
		sig:        sig,
		ops:        ops,
		config:     cfg,
		certSource: model.NewListCertificateSource(),
		crlSource:  model.NewListRevocationSource(model.RevocationKindCRL),
		ocspSource: model.NewListRevocationSource(model.RevocationKindOCSP),
	}
}

func (s *TimestampSource) ensureBuilt() {
	s.once.Do(func() {
		s.build()
		s.validateAll()
		s.builtAt = s.config.Now()
	})
}

// BuiltAt returns the time the one-shot build ran, per Configuration's
// Now seam (time.Now by default; pinned by tests). Like every accessor,
// it triggers the build if none has run yet, so it never returns the
// zero time.
func (s *TimestampSource) BuiltAt() time.Time {
	s.ensureBuilt()
	return s.builtAt
}

// ContentTimestamps returns CONTENT/ALL_DATA_OBJECTS/INDIVIDUAL_DATA_OBJECTS
// tokens discovered in the signed properties, in document order.
func (s *TimestampSource) ContentTimestamps() []*model.TimestampToken {
	s.ensureBuilt()
	return cloneTokens(s.contentTimestamps)
}

// SignatureTimestamps returns SIGNATURE tokens, in document order.
func (s *TimestampSource) SignatureTimestamps() []*model.TimestampToken {
	s.ensureBuilt()
	return cloneTokens(s.signatureTimestamps)
}

// TimestampsX1 returns VALIDATION_DATA (sig-and-refs) tokens.
func (s *TimestampSource) TimestampsX1() []*model.TimestampToken {
	s.ensureBuilt()
	return cloneTokens(s.x1Timestamps)
}

// TimestampsX2 returns VALIDATION_DATA_REFSONLY tokens.
func (s *TimestampSource) TimestampsX2() []*model.TimestampToken {
	s.ensureBuilt()
	return cloneTokens(s.x2Timestamps)
}

// ArchiveTimestamps returns ARCHIVE tokens, document-discovered ones
// followed by any appended later via AddExternalTimestamp.
func (s *TimestampSource) ArchiveTimestamps() []*model.TimestampToken {
	s.ensureBuilt()
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTokens(s.archiveTimestamps)
}

// AllTimestamps concatenates the five lists in the order content,
// signature, x1, x2, archive (§6), satisfying P5.
func (s *TimestampSource) AllTimestamps() []*model.TimestampToken {
	s.ensureBuilt()
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*model.TimestampToken, 0, len(s.contentTimestamps)+len(s.signatureTimestamps)+len(s.x1Timestamps)+len(s.x2Timestamps)+len(s.archiveTimestamps))
	all = append(all, s.contentTimestamps...)
	all = append(all, s.signatureTimestamps...)
	all = append(all, s.x1Timestamps...)
	all = append(all, s.x2Timestamps...)
	all = append(all, s.archiveTimestamps...)
	return all
}

// DocumentTimestamps is always empty: DOCUMENT-kind tokens are a
// PDF-DocTimeStamp concept no dialect shipped with this module
// produces (§9's open question is resolved by simply never populating
// it, rather than guessing whether it should feed AllTimestamps).
func (s *TimestampSource) DocumentTimestamps() []*model.TimestampToken {
	return nil
}

// CertificateSource returns the aggregate certificate source accumulated
// from every signed/unsigned-property timestamp and attribute (C5).
func (s *TimestampSource) CertificateSource() *model.ListCertificateSource {
	s.ensureBuilt()
	return s.certSource
}

// CRLSource returns the aggregate CRL source.
func (s *TimestampSource) CRLSource() *model.ListRevocationSource {
	s.ensureBuilt()
	return s.crlSource
}

// OCSPSource returns the aggregate OCSP source.
func (s *TimestampSource) OCSPSource() *model.ListRevocationSource {
	s.ensureBuilt()
	return s.ocspSource
}

func cloneTokens(toks []*model.TimestampToken) []*model.TimestampToken {
	return append([]*model.TimestampToken(nil), toks...)
}
