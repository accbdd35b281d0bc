// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package report

import (
	"fmt"
	"io"

	"github.com/ostafen/ftype/internal/env"
	"github.com/ostafen/ftype/pkg/checksum"
	"github.com/ostafen/ftype/pkg/dfxml"
	"github.com/ostafen/ftype/pkg/identify"
	"github.com/ostafen/ftype/pkg/magic"
)

// WriteDFXML writes records as a DFXML document, one file object each.
func WriteDFXML(w io.Writer, records []identify.Record, meta Meta) error {
	execEnv := dfxml.GetExecEnv()
	execEnv.CommandLine = meta.CommandLine
	execEnv.RunID = meta.RunID

	dw := dfxml.NewDFXMLWriter(w)
	err := dw.WriteHeader(dfxml.DFXMLHeader{
		XmlOutput: dfxml.XmlOutputVersion,
		Metadata:  dfxml.DefaultMetadata,
		Creator: dfxml.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: execEnv,
		},
		Source: dfxml.Source{Paths: meta.Sources},
	})
	if err != nil {
		return err
	}

	for _, r := range records {
		if err := dw.WriteFileObject(fileObject(r, meta.Hash)); err != nil {
			return err
		}
	}
	return dw.Close()
}

func fileObject(r identify.Record, hash checksum.Algorithm) dfxml.FileObject {
	fo := dfxml.FileObject{
		Filename: r.Path,
		NameType: dfxml.NameTypeRegular,
		FileSize: r.Size,
		Libmagic: r.Description,
		Source:   r.Source.String(),
	}
	if r.IsDir {
		fo.NameType = dfxml.NameTypeDirectory
	}
	if r.Checksum != "" {
		fo.HashDigest = &dfxml.HashDigest{Type: string(hash), Value: r.Checksum}
	}
	return fo
}

// ReadDFXML loads the file objects of a DFXML report back into records.
func ReadDFXML(r io.Reader) ([]identify.Record, error) {
	objects, err := dfxml.ReadFileObjects(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read DFXML report: %w", err)
	}

	records := make([]identify.Record, 0, len(objects))
	for _, fo := range objects {
		rec := identify.Record{
			Path:        fo.Filename,
			Description: fo.Libmagic,
			IsDir:       fo.NameType == dfxml.NameTypeDirectory,
			Size:        fo.FileSize,
		}
		if fo.Source != "" {
			var src magic.Source
			if err := src.UnmarshalText([]byte(fo.Source)); err != nil {
				return nil, fmt.Errorf("file object %q: %w", fo.Filename, err)
			}
			rec.Source = src
		}
		if fo.HashDigest != nil {
			rec.Checksum = fo.HashDigest.Value
		}
		records = append(records, rec)
	}
	return records, nil
}
