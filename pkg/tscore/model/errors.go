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

import "github.com/pkg/errors"

// ErrUnsupportedExternalTimestampKind is returned by AddExternalTimestamp
// when handed a token whose Kind isn't ARCHIVE. It is the only error
// this module ever returns to a caller; every other recoverable failure
// is logged and skipped (§7 of the design).
var ErrUnsupportedExternalTimestampKind = errors.New("tscore: external timestamp must have kind ARCHIVE")

// MalformedAttributeError documents why an attribute's timestamp or
// validation-data value could not be parsed. Extractors return it to
// the builder, which logs it and skips the attribute; it never reaches
// a caller of the timestamp source.
type MalformedAttributeError struct {
	OID   string
	Cause error
}

func (e *MalformedAttributeError) Error() string {
	if e.Cause != nil {
		return "malformed timestamp attribute " + e.OID + ": " + e.Cause.Error()
	}
	return "malformed timestamp attribute " + e.OID
}

func (e *MalformedAttributeError) Unwrap() error { return e.Cause }

// UnknownAttributeError documents an attribute the classifier could not
// match to any known category.
type UnknownAttributeError struct {
	OID string
}

func (e *UnknownAttributeError) Error() string {
	return "unknown attribute " + e.OID
}

// DigestUnresolvableError documents a reference digest that resolved
// to neither an encapsulated binary nor a ref. The reference is simply
// omitted from the encapsulated set; this type exists only to produce a
// consistent debug log line.
type DigestUnresolvableError struct {
	Digest Digest
}

func (e *DigestUnresolvableError) Error() string {
	return "digest unresolvable: " + e.Digest.String()
}
