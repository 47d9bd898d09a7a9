package source_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adsig/tscore/pkg/tscore/dialect"
	"github.com/adsig/tscore/pkg/tscore/model"
)

// dialectAttr is shorthand so test scenarios can write
// []dialectAttr{...} instead of spelling out the interface type.
type dialectAttr = dialect.SignatureAttribute

// errBoom is the stand-in "unparseable attribute" error for malformed-
// attribute scenarios (S6).
var errBoom = errors.New("boom: malformed attribute")

// mustCert builds a minimal self-signed certificate wrapped in a
// CertificateToken for tests that only need a stable identity, not a
// cryptographically meaningful chain.
func mustCert(t *testing.T, commonName string) *model.CertificateToken {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: commonName},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return model.NewCertificateToken(der, cert)
}

// attrKind enumerates the fake dialect's attribute categories, mirroring
// the predicates in dialect.Classifier but collapsed to one tag per
// fakeAttr so test scenarios can be built declaratively instead of
// through ASN.1 encodings.
type attrKind int

const (
	akContent attrKind = iota
	akSignature
	akCompleteCertRefs
	akCompleteRevRefs
	akCertValues
	akRevValues
	akRefsOnly
	akSigAndRefs
	akArchive
	akUnknown
)

type fakeAttr struct {
	name string
	kind attrKind

	token *model.TimestampToken
	err   error

	certDigests []model.Digest
	crlDigests  []model.Digest
	ocspDigests []model.Digest
	certs       []*model.CertificateToken
	crls        []*model.RevocationBinary
	ocsps       []*model.RevocationBinary
}

func (a fakeAttr) Name() string { return a.name }

type fakeScope struct{ id model.Identifier }

func (s fakeScope) ID() model.Identifier { return s.id }

type fakeSig struct {
	id                  model.Identifier
	signedProperties    []dialect.SignatureAttribute
	unsignedProperties  []dialect.SignatureAttribute
	certSource          *model.ListCertificateSource
	crlSource           *model.ListRevocationSource
	ocspSource          *model.ListRevocationSource
	signingCertificates []*model.CertificateToken
	scopes              []dialect.SignatureScope
	rawSignedContent    []byte
	rawSignatureValue   []byte
	rawCMS              []byte
}

func newFakeSig() *fakeSig {
	return &fakeSig{
		id:                "sig1",
		certSource:        model.NewListCertificateSource(),
		crlSource:         model.NewListRevocationSource(model.RevocationKindCRL),
		ocspSource:        model.NewListRevocationSource(model.RevocationKindOCSP),
		rawSignedContent:  []byte("content-bytes"),
		rawSignatureValue: []byte("signature-value-bytes"),
		rawCMS:            []byte("full-cms-bytes"),
		scopes:            []dialect.SignatureScope{fakeScope{id: "scope1"}},
	}
}

func (s *fakeSig) ID() model.Identifier                             { return s.id }
func (s *fakeSig) SignedProperties() []dialect.SignatureAttribute   { return s.signedProperties }
func (s *fakeSig) UnsignedProperties() []dialect.SignatureAttribute { return s.unsignedProperties }
func (s *fakeSig) CertificateSource() *model.ListCertificateSource  { return s.certSource }
func (s *fakeSig) CRLSource() *model.ListRevocationSource           { return s.crlSource }
func (s *fakeSig) OCSPSource() *model.ListRevocationSource          { return s.ocspSource }
func (s *fakeSig) SigningCertificates() []*model.CertificateToken   { return s.signingCertificates }
func (s *fakeSig) Scopes() []dialect.SignatureScope                 { return s.scopes }
func (s *fakeSig) RawSignedContent() []byte                         { return s.rawSignedContent }
func (s *fakeSig) RawSignatureValue() []byte                        { return s.rawSignatureValue }
func (s *fakeSig) RawCMS() []byte                                   { return s.rawCMS }
func (s *fakeSig) EncodedAttribute(a dialect.SignatureAttribute) []byte {
	return []byte(a.Name())
}
func (s *fakeSig) UnsignedAttributesBefore(a dialect.SignatureAttribute) []dialect.SignatureAttribute {
	var out []dialect.SignatureAttribute
	for _, u := range s.unsignedProperties {
		if u.Name() == a.Name() {
			break
		}
		out = append(out, u)
	}
	return out
}

type fakeClassifier struct{}

func kindOf(a dialect.SignatureAttribute) attrKind {
	fa, ok := a.(fakeAttr)
	if !ok {
		return akUnknown
	}
	return fa.kind
}

func (fakeClassifier) IsContentTimestamp(a dialect.SignatureAttribute) bool {
	return kindOf(a) == akContent
}
func (fakeClassifier) IsAllDataObjectsTimestamp(a dialect.SignatureAttribute) bool { return false }
func (fakeClassifier) IsIndividualDataObjectsTimestamp(a dialect.SignatureAttribute) bool {
	return false
}
func (fakeClassifier) IsSignatureTimestamp(a dialect.SignatureAttribute) bool {
	return kindOf(a) == akSignature
}
func (fakeClassifier) IsCompleteCertificateRef(a dialect.SignatureAttribute) bool {
	return kindOf(a) == akCompleteCertRefs
}
func (fakeClassifier) IsAttributeCertificateRef(a dialect.SignatureAttribute) bool { return false }
func (fakeClassifier) IsCompleteRevocationRef(a dialect.SignatureAttribute) bool {
	return kindOf(a) == akCompleteRevRefs
}
func (fakeClassifier) IsAttributeRevocationRef(a dialect.SignatureAttribute) bool { return false }
func (fakeClassifier) IsRefsOnlyTimestamp(a dialect.SignatureAttribute) bool {
	return kindOf(a) == akRefsOnly
}
func (fakeClassifier) IsSigAndRefsTimestamp(a dialect.SignatureAttribute) bool {
	return kindOf(a) == akSigAndRefs
}
func (fakeClassifier) IsCertificateValues(a dialect.SignatureAttribute) bool {
	return kindOf(a) == akCertValues
}
func (fakeClassifier) IsRevocationValues(a dialect.SignatureAttribute) bool {
	return kindOf(a) == akRevValues
}
func (fakeClassifier) IsArchiveTimestamp(a dialect.SignatureAttribute) bool {
	return kindOf(a) == akArchive
}
func (fakeClassifier) IsTimeStampValidationData(a dialect.SignatureAttribute) bool { return false }

type fakeExtractors struct{}

func asFakeAttr(a dialect.SignatureAttribute) fakeAttr { return a.(fakeAttr) }

func (fakeExtractors) ContentTimestampToken(a dialect.SignatureAttribute) (*model.TimestampToken, error) {
	fa := asFakeAttr(a)
	return fa.token, fa.err
}
func (fakeExtractors) AllDataObjectsTimestampToken(a dialect.SignatureAttribute) (*model.TimestampToken, error) {
	fa := asFakeAttr(a)
	return fa.token, fa.err
}
func (fakeExtractors) IndividualDataObjectsTimestampToken(a dialect.SignatureAttribute, sig dialect.ParsedSignature) (*model.TimestampToken, []dialect.SignatureScope, error) {
	fa := asFakeAttr(a)
	return fa.token, nil, fa.err
}
func (fakeExtractors) SignatureTimestampToken(a dialect.SignatureAttribute) (*model.TimestampToken, error) {
	fa := asFakeAttr(a)
	return fa.token, fa.err
}
func (fakeExtractors) RefsOnlyTimestampToken(a dialect.SignatureAttribute) (*model.TimestampToken, error) {
	fa := asFakeAttr(a)
	return fa.token, fa.err
}
func (fakeExtractors) SigAndRefsTimestampToken(a dialect.SignatureAttribute) (*model.TimestampToken, error) {
	fa := asFakeAttr(a)
	return fa.token, fa.err
}
func (fakeExtractors) ArchiveTimestampToken(a dialect.SignatureAttribute) (*model.TimestampToken, model.ArchiveSubKind, error) {
	fa := asFakeAttr(a)
	return fa.token, model.ArchiveTimestampV2, fa.err
}
func (fakeExtractors) CertificateRefDigests(a dialect.SignatureAttribute) ([]model.Digest, error) {
	fa := asFakeAttr(a)
	return fa.certDigests, fa.err
}
func (fakeExtractors) RevocationRefDigests(a dialect.SignatureAttribute) ([]model.Digest, []model.Digest, error) {
	fa := asFakeAttr(a)
	return fa.crlDigests, fa.ocspDigests, fa.err
}
func (fakeExtractors) CertificateValues(a dialect.SignatureAttribute) ([]*model.CertificateToken, error) {
	fa := asFakeAttr(a)
	return fa.certs, fa.err
}
func (fakeExtractors) RevocationValues(a dialect.SignatureAttribute) ([]*model.RevocationBinary, []*model.RevocationBinary, error) {
	fa := asFakeAttr(a)
	return fa.crls, fa.ocsps, fa.err
}
func (fakeExtractors) TimestampValidationData(a dialect.SignatureAttribute) ([]*model.CertificateToken, []*model.RevocationBinary, []*model.RevocationBinary, error) {
	fa := asFakeAttr(a)
	return fa.certs, fa.crls, fa.ocsps, fa.err
}

// fakeDataBuilder returns fixed byte documents per timestamp kind so
// tests can precompute the matching message imprint when constructing a
// fakeAttr's token.
type fakeDataBuilder struct {
	contentData          []byte
	signatureData        []byte
	x1Data               []byte
	x2Data               []byte
	archiveData          []byte
	signedDataReferences []model.TimestampedReference
}

func (b fakeDataBuilder) ContentTimestampData(tok *model.TimestampToken, sig dialect.ParsedSignature) []byte {
	return b.contentData
}
func (b fakeDataBuilder) SignatureTimestampData(sig dialect.ParsedSignature) []byte {
	return b.signatureData
}
func (b fakeDataBuilder) TimestampX1Data(tok *model.TimestampToken, sig dialect.ParsedSignature) []byte {
	return b.x1Data
}
func (b fakeDataBuilder) TimestampX2Data(tok *model.TimestampToken, sig dialect.ParsedSignature) []byte {
	return b.x2Data
}
func (b fakeDataBuilder) ArchiveTimestampData(tok *model.TimestampToken, sig dialect.ParsedSignature) []byte {
	return b.archiveData
}
func (b fakeDataBuilder) SignedDataReferences(sig dialect.ParsedSignature) []model.TimestampedReference {
	return b.signedDataReferences
}

func fakeOps(db fakeDataBuilder) dialect.Ops {
	return dialect.Ops{
		Classifier:  fakeClassifier{},
		Extractors:  fakeExtractors{},
		DataBuilder: db,
	}
}

func mustDigest(data []byte) model.Digest {
	d, ok := model.ComputeDigest(model.SHA256, data)
	if !ok {
		panic("sha256 unavailable")
	}
	return d
}
