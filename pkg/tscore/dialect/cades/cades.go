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

import "github.com/adsig/tscore/pkg/tscore/dialect"

// Ops returns the dialect.Ops bundle for CMS/CAdES signatures, ready to
// pass to source.New.
func Ops() dialect.Ops {
	return dialect.Ops{
		Classifier:  Classifier{},
		Extractors:  Extractors{},
		DataBuilder: DataBuilder{},
	}
}
