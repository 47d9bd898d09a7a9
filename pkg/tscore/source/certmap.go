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
	"fmt"

	"github.com/adsig/tscore/pkg/tscore/model"
)

// CertificateMapWithinTimestamps implements §4.9: a synthetic key
// "<kindName><counter>" per timestamp, counter shared and monotonic
// across all five lists in the order content, x1, x2, signature,
// archive — deliberately not the content/signature/x1/x2/archive order
// AllTimestamps uses, per spec.md's literal text for each accessor.
func (s *TimestampSource) CertificateMapWithinTimestamps(skipLastArchive bool) map[string][]*model.CertificateToken {
	s.ensureBuilt()
	s.mu.Lock()
	defer s.mu.Unlock()

	archive := s.archiveTimestamps
	if skipLastArchive && len(archive) > 0 {
		archive = archive[:len(archive)-1]
	}

	out := make(map[string][]*model.CertificateToken)
	counter := 0
	add := func(kindName string, toks []*model.TimestampToken) {
		for _, t := range toks {
			out[fmt.Sprintf("%s%d", kindName, counter)] = t.Certificates()
			counter++
		}
	}

	add("content", s.contentTimestamps)
	add("x1", s.x1Timestamps)
	add("x2", s.x2Timestamps)
	add("signature", s.signatureTimestamps)
	add("archive", archive)

	return out
}
