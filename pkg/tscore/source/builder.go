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
	"github.com/adsig/tscore/pkg/tscore/dialect"
	"github.com/adsig/tscore/pkg/tscore/model"
)

// build runs the two-phase traversal of §4.4 exactly once (guarded by
// TimestampSource.once). It owns every running accumulator as a local
// variable — per the design notes' "mutable running accumulators
// visible as fields" concern — and only assigns the finished lists
// onto the receiver at the very end. The receiver's aggregate
// certificate/CRL/OCSP sources are filled in place as each attribute
// and token is absorbed.
func (s *TimestampSource) build() {
	cl, ex, db := s.ops.Classifier, s.ops.Extractors, s.ops.DataBuilder

	contentRefs := contentReferences(s.sig)

	var contentTokens []*model.TimestampToken
	for _, a := range s.sig.SignedProperties() {
		switch {
		case cl.IsContentTimestamp(a):
			tok, err := ex.ContentTimestampToken(a)
			s.emitPhaseAToken(tok, err, a, contentRefs, &contentTokens)
		case cl.IsAllDataObjectsTimestamp(a):
			tok, err := ex.AllDataObjectsTimestampToken(a)
			s.emitPhaseAToken(tok, err, a, contentRefs, &contentTokens)
		case cl.IsIndividualDataObjectsTimestamp(a):
			tok, scopes, err := ex.IndividualDataObjectsTimestampToken(a, s.sig)
			if err != nil || tok == nil {
				log.Warn.Printf("tscore: malformed individual-data-objects timestamp attribute %q: %v", a.Name(), err)
				continue
			}
			tok.BindReferences(referencesForScopes(scopes))
			s.absorbTimestamp(tok)
			contentTokens = append(contentTokens, tok)
		default:
			// Signed properties carry many non-timestamp attributes
			// (signing-certificate, message-digest, signing-time); an
			// attribute matching none of the timestamp predicates here
			// is ordinary and not logged, unlike Phase B's unsigned
			// properties where every attribute is expected to resolve.
		}
	}

	encapsulatedRefs := model.NewReferenceSet()
	var signatureTokens, x1Tokens, x2Tokens, archiveTokens []*model.TimestampToken
	emitted := append([]*model.TimestampToken(nil), contentTokens...)

	var lastRank int
	for _, a := range s.sig.UnsignedProperties() {
		if rank := timestampAttributeRank(cl, a); rank > 0 {
			if s.config.StrictOrdering && rank < lastRank {
				log.Warn.Printf("tscore: attribute %q is out of document order (rank %d follows rank %d)", a.Name(), rank, lastRank)
			}
			if rank > lastRank {
				lastRank = rank
			}
		}

		switch {
		case cl.IsCompleteCertificateRef(a), cl.IsAttributeCertificateRef(a):
			s.absorbCertificateRefs(ex, a, encapsulatedRefs)

		case cl.IsCompleteRevocationRef(a), cl.IsAttributeRevocationRef(a):
			s.absorbRevocationRefs(ex, a, encapsulatedRefs)

		case cl.IsCertificateValues(a):
			certs, err := ex.CertificateValues(a)
			if err != nil {
				log.Warn.Printf("tscore: malformed certificate-values attribute %q: %v", a.Name(), err)
				continue
			}
			for _, c := range certs {
				s.certSource.Add(c)
				encapsulatedRefs.AddOne(model.TimestampedReference{ReferencedID: c.ID, Type: model.CertificateObject})
			}

		case cl.IsRevocationValues(a):
			crls, ocsps, err := ex.RevocationValues(a)
			if err != nil {
				log.Warn.Printf("tscore: malformed revocation-values attribute %q: %v", a.Name(), err)
				continue
			}
			s.absorbRevocationValues(crls, ocsps, encapsulatedRefs)

		case cl.IsTimeStampValidationData(a):
			certs, crls, ocsps, err := ex.TimestampValidationData(a)
			if err != nil {
				log.Warn.Printf("tscore: malformed timestamp-validation-data attribute %q: %v", a.Name(), err)
				continue
			}
			for _, c := range certs {
				s.certSource.Add(c)
				encapsulatedRefs.AddOne(model.TimestampedReference{ReferencedID: c.ID, Type: model.CertificateObject})
			}
			s.absorbRevocationValues(crls, ocsps, encapsulatedRefs)

		case cl.IsSignatureTimestamp(a):
			tok, err := ex.SignatureTimestampToken(a)
			if err != nil || tok == nil {
				log.Warn.Printf("tscore: malformed signature-timestamp attribute %q: %v", a.Name(), err)
				continue
			}
			refs := append([]model.TimestampedReference(nil), contentRefs...)
			refs = append(refs, model.TimestampedReference{ReferencedID: s.sig.ID(), Type: model.SignatureObject})
			for _, c := range s.sig.SigningCertificates() {
				refs = append(refs, model.TimestampedReference{ReferencedID: c.ID, Type: model.CertificateObject})
			}
			tok.BindReferences(refs)
			s.absorbTimestamp(tok)
			signatureTokens = append(signatureTokens, tok)
			emitted = append(emitted, tok)

		case cl.IsRefsOnlyTimestamp(a):
			tok, err := ex.RefsOnlyTimestampToken(a)
			if err != nil || tok == nil {
				log.Warn.Printf("tscore: malformed refs-only-timestamp attribute %q: %v", a.Name(), err)
				continue
			}
			tok.BindReferences(encapsulatedRefs.Slice())
			s.absorbTimestamp(tok)
			x2Tokens = append(x2Tokens, tok)
			emitted = append(emitted, tok)

		case cl.IsSigAndRefsTimestamp(a):
			tok, err := ex.SigAndRefsTimestampToken(a)
			if err != nil || tok == nil {
				log.Warn.Printf("tscore: malformed sig-and-refs-timestamp attribute %q: %v", a.Name(), err)
				continue
			}
			refs := model.NewReferenceSet()
			for _, prior := range signatureTokens {
				refs.AddMany(expandPriorTimestamp(prior))
			}
			refs.AddMany(encapsulatedRefs.Slice())
			tok.BindReferences(refs.Slice())
			s.absorbTimestamp(tok)
			x1Tokens = append(x1Tokens, tok)
			emitted = append(emitted, tok)

		case cl.IsArchiveTimestamp(a):
			tok, sub, err := ex.ArchiveTimestampToken(a)
			if err != nil || tok == nil {
				log.Warn.Printf("tscore: malformed archive-timestamp attribute %q: %v", a.Name(), err)
				continue
			}
			tok.SetArchiveSubKind(sub)
			refs := model.NewReferenceSet()
			for _, prior := range emitted {
				refs.AddMany(expandPriorTimestamp(prior))
			}
			refs.AddMany(encapsulatedRefs.Slice())
			refs.AddMany(db.SignedDataReferences(s.sig))
			tok.BindReferences(refs.Slice())
			s.absorbTimestamp(tok)
			archiveTokens = append(archiveTokens, tok)
			emitted = append(emitted, tok)

		default:
			log.Warn.Printf("tscore: unknown unsigned-property attribute %q", a.Name())
		}
	}

	s.contentTimestamps = contentTokens
	s.signatureTimestamps = signatureTokens
	s.x1Timestamps = x1Tokens
	s.x2Timestamps = x2Tokens
	s.archiveTimestamps = archiveTokens
}

// emitPhaseAToken shares the content/all-data-objects emission path:
// both classifications bind the same contentRefs and absorb the same
// way, differing only in which extractor produced the token.
func (s *TimestampSource) emitPhaseAToken(tok *model.TimestampToken, err error, a dialect.SignatureAttribute, contentRefs []model.TimestampedReference, out *[]*model.TimestampToken) {
	if err != nil || tok == nil {
		log.Warn.Printf("tscore: malformed content timestamp attribute %q: %v", a.Name(), err)
		return
	}
	tok.BindReferences(contentRefs)
	s.absorbTimestamp(tok)
	*out = append(*out, tok)
}

func (s *TimestampSource) absorbTimestamp(tok *model.TimestampToken) {
	for _, c := range tok.Certificates() {
		s.certSource.Add(c)
	}
	s.crlSource.Merge(tok.CRLSource())
	s.ocspSource.Merge(tok.OCSPSource())
}

func (s *TimestampSource) absorbRevocationValues(crls, ocsps []*model.RevocationBinary, encapsulatedRefs *model.ReferenceSet) {
	for _, c := range crls {
		s.crlSource.Add(c)
		encapsulatedRefs.AddOne(model.TimestampedReference{ReferencedID: c.ID, Type: model.RevocationObject})
	}
	for _, o := range ocsps {
		s.ocspSource.Add(o)
		encapsulatedRefs.AddOne(model.TimestampedReference{ReferencedID: o.ID, Type: model.RevocationObject})
	}
}

func (s *TimestampSource) absorbCertificateRefs(ex dialect.Extractors, a dialect.SignatureAttribute, encapsulatedRefs *model.ReferenceSet) {
	digests, err := ex.CertificateRefDigests(a)
	if err != nil {
		log.Warn.Printf("tscore: malformed certificate-ref attribute %q: %v", a.Name(), err)
		return
	}
	for _, d := range digests {
		if len(d.Value) == 0 {
			log.Debug.Printf("tscore: %v in attribute %q", &model.DigestUnresolvableError{Digest: d}, a.Name())
			continue
		}
		if c, ok := s.sig.CertificateSource().FindByDigest(d); ok {
			encapsulatedRefs.AddOne(model.TimestampedReference{ReferencedID: c.ID, Type: model.CertificateObject})
			continue
		}
		if c, ok := s.certSource.FindByDigest(d); ok {
			encapsulatedRefs.AddOne(model.TimestampedReference{ReferencedID: c.ID, Type: model.CertificateObject})
			continue
		}
		if ref, ok := s.certSource.FindRefByDigest(d); ok {
			encapsulatedRefs.AddOne(model.TimestampedReference{ReferencedID: ref.ID, Type: model.CertificateObject})
			continue
		}
		ref := model.NewCertificateRef(d)
		s.certSource.AddRef(ref)
		encapsulatedRefs.AddOne(model.TimestampedReference{ReferencedID: ref.ID, Type: model.CertificateObject})
	}
}

func (s *TimestampSource) absorbRevocationRefs(ex dialect.Extractors, a dialect.SignatureAttribute, encapsulatedRefs *model.ReferenceSet) {
	crlDigests, ocspDigests, err := ex.RevocationRefDigests(a)
	if err != nil {
		log.Warn.Printf("tscore: malformed revocation-ref attribute %q: %v", a.Name(), err)
		return
	}
	resolve := func(d model.Digest, sigSrc, aggSrc *model.ListRevocationSource, kind model.RevocationKind) {
		if len(d.Value) == 0 {
			log.Debug.Printf("tscore: %v in attribute %q", &model.DigestUnresolvableError{Digest: d}, a.Name())
			return
		}
		if b, ok := sigSrc.FindByDigest(d); ok {
			encapsulatedRefs.AddOne(model.TimestampedReference{ReferencedID: b.ID, Type: model.RevocationObject})
			return
		}
		if b, ok := aggSrc.FindByDigest(d); ok {
			encapsulatedRefs.AddOne(model.TimestampedReference{ReferencedID: b.ID, Type: model.RevocationObject})
			return
		}
		if ref, ok := aggSrc.FindRefByDigest(d); ok {
			encapsulatedRefs.AddOne(model.TimestampedReference{ReferencedID: ref.ID, Type: model.RevocationObject})
			return
		}
		ref := model.NewRevocationRef(kind, d)
		aggSrc.AddRef(ref)
		encapsulatedRefs.AddOne(model.TimestampedReference{ReferencedID: ref.ID, Type: model.RevocationObject})
	}
	for _, d := range crlDigests {
		resolve(d, s.sig.CRLSource(), s.crlSource, model.RevocationKindCRL)
	}
	for _, d := range ocspDigests {
		resolve(d, s.sig.OCSPSource(), s.ocspSource, model.RevocationKindOCSP)
	}
}

// timestampAttributeRank orders the four timestamp-producing unsigned
// attribute kinds for StrictOrdering's document-order check: signature
// (1) precedes refs-only/sig-and-refs (2), which precede archive (3).
// Certificate/revocation-ref and -values attributes return 0 and are
// never rank-checked.
func timestampAttributeRank(cl dialect.Classifier, a dialect.SignatureAttribute) int {
	switch {
	case cl.IsSignatureTimestamp(a):
		return 1
	case cl.IsRefsOnlyTimestamp(a), cl.IsSigAndRefsTimestamp(a):
		return 2
	case cl.IsArchiveTimestamp(a):
		return 3
	default:
		return 0
	}
}

// contentReferences returns one (scope.ID(), SIGNED_DATA) reference per
// signature scope, the "contentRefs" of §4.4 Phase A.
func contentReferences(sig dialect.ParsedSignature) []model.TimestampedReference {
	scopes := sig.Scopes()
	refs := make([]model.TimestampedReference, 0, len(scopes))
	for _, sc := range scopes {
		refs = append(refs, model.TimestampedReference{ReferencedID: sc.ID(), Type: model.SignedDataObject})
	}
	return refs
}

// referencesForScopes restricts contentReferences to a dialect-chosen
// subset, for an individual-data-objects timestamp.
func referencesForScopes(scopes []dialect.SignatureScope) []model.TimestampedReference {
	refs := make([]model.TimestampedReference, 0, len(scopes))
	for _, sc := range scopes {
		refs = append(refs, model.TimestampedReference{ReferencedID: sc.ID(), Type: model.SignedDataObject})
	}
	return refs
}
