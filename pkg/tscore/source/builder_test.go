package source_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adsig/tscore/pkg/tscore/model"
	"github.com/adsig/tscore/pkg/tscore/source"
)

// S1 — B-level: no timestamp attributes at all.
func TestSource_BLevel(t *testing.T) {
	sig := newFakeSig()
	src := source.New(sig, fakeOps(fakeDataBuilder{}), nil)

	require.Empty(t, src.ContentTimestamps())
	require.Empty(t, src.SignatureTimestamps())
	require.Empty(t, src.TimestampsX1())
	require.Empty(t, src.TimestampsX2())
	require.Empty(t, src.ArchiveTimestamps())
	require.Empty(t, src.CertificateMapWithinTimestamps(false))
}

// S2 — T-level: one SIGNATURE timestamp whose covered refs are the
// signing-cert refs union {(sig, SIGNATURE)}.
func TestSource_TLevel(t *testing.T) {
	sig := newFakeSig()
	signerCert := mustCert(t, "signer")
	sig.signingCertificates = []*model.CertificateToken{signerCert}

	db := fakeDataBuilder{signatureData: []byte("signature-value-bytes")}
	sigAttr := fakeAttr{
		name: "signature-timestamp",
		kind: akSignature,
		token: model.NewTimestampToken("sigTS", model.Signature,
			mustDigest(db.signatureData), nil),
	}
	sig.unsignedProperties = []dialectAttr{sigAttr}

	src := source.New(sig, fakeOps(db), nil)
	toks := src.SignatureTimestamps()
	require.Len(t, toks, 1)
	require.Empty(t, src.ArchiveTimestamps())

	refs := toks[0].TimestampedReferences()
	require.Contains(t, refs, model.TimestampedReference{ReferencedID: sig.ID(), Type: model.SignatureObject})
	require.Contains(t, refs, model.TimestampedReference{ReferencedID: signerCert.ID, Type: model.CertificateObject})
	require.Equal(t, model.Matched, toks[0].MatchResult())
}

// S3 — LT-level: a SIGNATURE timestamp plus certificate-values and
// revocation-values attributes; aggregate sources absorb the embedded
// material; no archive timestamp is emitted.
func TestSource_LTLevel(t *testing.T) {
	sig := newFakeSig()
	signerCert := mustCert(t, "signer")
	sig.signingCertificates = []*model.CertificateToken{signerCert}

	embeddedCert := mustCert(t, "embedded")
	crlBin := &model.RevocationBinary{ID: "crl1", Kind: model.RevocationKindCRL}

	db := fakeDataBuilder{signatureData: []byte("signature-value-bytes")}
	sigAttr := fakeAttr{
		name:  "signature-timestamp",
		kind:  akSignature,
		token: model.NewTimestampToken("sigTS", model.Signature, mustDigest(db.signatureData), nil),
	}
	certValuesAttr := fakeAttr{name: "certificate-values", kind: akCertValues, certs: []*model.CertificateToken{embeddedCert}}
	revValuesAttr := fakeAttr{name: "revocation-values", kind: akRevValues, crls: []*model.RevocationBinary{crlBin}}

	sig.unsignedProperties = []dialectAttr{sigAttr, certValuesAttr, revValuesAttr}

	src := source.New(sig, fakeOps(db), nil)
	require.Len(t, src.SignatureTimestamps(), 1)
	require.Empty(t, src.ArchiveTimestamps())

	certs := src.CertificateSource().All()
	require.Contains(t, certs, embeddedCert)

	crls := src.CRLSource().All()
	require.Contains(t, crls, crlBin)
}

// S4 — LTA-level: an ARCHIVE timestamp must reference every earlier
// timestamp, its certificates, and the prior reference set.
func TestSource_LTALevel(t *testing.T) {
	sig := newFakeSig()
	signerCert := mustCert(t, "signer")
	archiveCert := mustCert(t, "archive-ca")
	sig.signingCertificates = []*model.CertificateToken{signerCert}

	db := fakeDataBuilder{
		signatureData:        []byte("signature-value-bytes"),
		archiveData:          []byte("archive-fixed-bytes"),
		signedDataReferences: []model.TimestampedReference{{ReferencedID: "cms-blob", Type: model.SignedDataObject}},
	}
	sigTok := model.NewTimestampToken("sigTS", model.Signature, mustDigest(db.signatureData), nil)
	sigAttr := fakeAttr{name: "signature-timestamp", kind: akSignature, token: sigTok}

	archiveTok := model.NewTimestampToken("archiveTS", model.Archive, mustDigest(db.archiveData), []*model.CertificateToken{archiveCert})
	archiveAttr := fakeAttr{name: "archive-timestamp", kind: akArchive, token: archiveTok}

	sig.unsignedProperties = []dialectAttr{sigAttr, archiveAttr}

	src := source.New(sig, fakeOps(db), nil)
	sigTSs := src.SignatureTimestamps()
	archiveTSs := src.ArchiveTimestamps()
	require.Len(t, sigTSs, 1)
	require.Len(t, archiveTSs, 1)

	refs := archiveTSs[0].TimestampedReferences()
	require.Contains(t, refs, model.TimestampedReference{ReferencedID: sigTSs[0].ID(), Type: model.TimestampObject})
	require.Contains(t, refs, model.TimestampedReference{ReferencedID: sig.ID(), Type: model.SignatureObject})
	require.Contains(t, refs, model.TimestampedReference{ReferencedID: signerCert.ID, Type: model.CertificateObject})
	require.Contains(t, refs, model.TimestampedReference{ReferencedID: "cms-blob", Type: model.SignedDataObject})
	require.Equal(t, model.Matched, archiveTSs[0].MatchResult())
}

// S5 — external archive intake on a signature carrying one signature
// timestamp.
func TestSource_ExternalTimestampIntake(t *testing.T) {
	sig := newFakeSig()
	signerCert := mustCert(t, "signer")
	sig.signingCertificates = []*model.CertificateToken{signerCert}

	db := fakeDataBuilder{
		signatureData: []byte("signature-value-bytes"),
		archiveData:   []byte("archive-fixed-bytes"),
	}
	sigTok := model.NewTimestampToken("sigTS", model.Signature, mustDigest(db.signatureData), nil)
	sig.unsignedProperties = []dialectAttr{{name: "signature-timestamp", kind: akSignature, token: sigTok}}

	src := source.New(sig, fakeOps(db), nil)
	require.Len(t, src.SignatureTimestamps(), 1)

	t.Run("rejects a non-archive kind", func(t *testing.T) {
		bad := model.NewTimestampToken("bad", model.Content, model.Digest{}, nil)
		err := src.AddExternalTimestamp(bad)
		require.ErrorIs(t, err, model.ErrUnsupportedExternalTimestampKind)
	})

	t.Run("accepts an archive token and enriches its references", func(t *testing.T) {
		ext := model.NewTimestampToken("ext", model.Archive, mustDigest(db.archiveData), nil)
		err := src.AddExternalTimestamp(ext)
		require.NoError(t, err)

		require.Contains(t, src.ArchiveTimestamps(), ext)
		refs := ext.TimestampedReferences()
		require.Contains(t, refs, model.TimestampedReference{ReferencedID: "sigTS", Type: model.TimestampObject})
		require.Equal(t, model.Matched, ext.MatchResult())
	})
}

// S6 — a malformed timestamp attribute among signed properties is
// skipped; remaining timestamps still appear in order.
func TestSource_MalformedSignedProperty(t *testing.T) {
	sig := newFakeSig()
	db := fakeDataBuilder{signatureData: []byte("signature-value-bytes")}

	sig.signedProperties = []dialectAttr{
		{name: "broken-content-ts", kind: akContent, err: errBoom},
	}
	sigTok := model.NewTimestampToken("sigTS", model.Signature, mustDigest(db.signatureData), nil)
	sig.unsignedProperties = []dialectAttr{{name: "signature-timestamp", kind: akSignature, token: sigTok}}

	src := source.New(sig, fakeOps(db), nil)
	require.Empty(t, src.ContentTimestamps())
	require.Len(t, src.SignatureTimestamps(), 1)
}

// P4 — idempotence: repeated calls return pointwise-equal lists.
func TestSource_BuildIsIdempotent(t *testing.T) {
	sig := newFakeSig()
	db := fakeDataBuilder{signatureData: []byte("signature-value-bytes")}
	sigTok := model.NewTimestampToken("sigTS", model.Signature, mustDigest(db.signatureData), nil)
	sig.unsignedProperties = []dialectAttr{{name: "signature-timestamp", kind: akSignature, token: sigTok}}

	src := source.New(sig, fakeOps(db), nil)
	first := src.SignatureTimestamps()
	second := src.SignatureTimestamps()
	require.Equal(t, first, second)
}

// P5 — AllTimestamps is the concatenation content, signature, x1, x2,
// archive, and its length is the sum of the five lists.
func TestSource_AllTimestampsOrder(t *testing.T) {
	sig := newFakeSig()
	db := fakeDataBuilder{
		contentData:   []byte("content-bytes"),
		signatureData: []byte("signature-value-bytes"),
		x1Data:        []byte("x1-fixed"),
		x2Data:        []byte("x2-fixed"),
		archiveData:   []byte("archive-fixed-bytes"),
	}

	contentTok := model.NewTimestampToken("contentTS", model.Content, mustDigest(db.contentData), nil)
	sigTok := model.NewTimestampToken("sigTS", model.Signature, mustDigest(db.signatureData), nil)
	x1Tok := model.NewTimestampToken("x1TS", model.ValidationData, mustDigest(db.x1Data), nil)
	x2Tok := model.NewTimestampToken("x2TS", model.ValidationDataRefsOnly, mustDigest(db.x2Data), nil)
	archiveTok := model.NewTimestampToken("archiveTS", model.Archive, mustDigest(db.archiveData), nil)

	sig.signedProperties = []dialectAttr{{name: "content-ts", kind: akContent, token: contentTok}}
	sig.unsignedProperties = []dialectAttr{
		{name: "signature-ts", kind: akSignature, token: sigTok},
		{name: "x2-ts", kind: akRefsOnly, token: x2Tok},
		{name: "x1-ts", kind: akSigAndRefs, token: x1Tok},
		{name: "archive-ts", kind: akArchive, token: archiveTok},
	}

	src := source.New(sig, fakeOps(db), nil)
	all := src.AllTimestamps()
	require.Len(t, all, 5)
	require.Equal(t, []model.Identifier{"contentTS", "sigTS", "x1TS", "x2TS", "archiveTS"}, idsOf(all))
}

// BuiltAt reports the time the one-shot build ran, per the configured
// clock seam, and stays pinned across repeated calls.
func TestSource_BuiltAtUsesConfiguredClock(t *testing.T) {
	sig := newFakeSig()
	db := fakeDataBuilder{}
	pinned := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	cfg := &model.Configuration{Now: func() time.Time { return pinned }}

	src := source.New(sig, fakeOps(db), cfg)
	require.Equal(t, pinned, src.BuiltAt())
	require.Equal(t, pinned, src.BuiltAt())
}

// StrictOrdering only logs a warning on out-of-order timestamp
// attributes; it never changes which tokens are discovered.
func TestSource_StrictOrderingDoesNotAffectDiscovery(t *testing.T) {
	sig := newFakeSig()
	db := fakeDataBuilder{
		signatureData: []byte("signature-value-bytes"),
		archiveData:   []byte("archive-fixed-bytes"),
	}
	archiveTok := model.NewTimestampToken("archiveTS", model.Archive, mustDigest(db.archiveData), nil)
	sigTok := model.NewTimestampToken("sigTS", model.Signature, mustDigest(db.signatureData), nil)
	// Archive attribute placed before the signature attribute: out of
	// rank order, which StrictOrdering should only warn about.
	sig.unsignedProperties = []dialectAttr{
		{name: "archive-ts", kind: akArchive, token: archiveTok},
		{name: "signature-ts", kind: akSignature, token: sigTok},
	}

	cfg := &model.Configuration{StrictOrdering: true, Now: time.Now}
	src := source.New(sig, fakeOps(db), cfg)
	require.Len(t, src.SignatureTimestamps(), 1)
	require.Len(t, src.ArchiveTimestamps(), 1)
}

func idsOf(toks []*model.TimestampToken) []model.Identifier {
	out := make([]model.Identifier, len(toks))
	for i, t := range toks {
		out[i] = t.ID()
	}
	return out
}
