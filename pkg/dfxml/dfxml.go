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
package dfxml

import (
	"encoding/xml"
	"os"
	"os/user"
	"runtime"
	"strconv"
	"time"

	"github.com/ostafen/ftype/pkg/sysinfo"
)

const XmlOutputVersion = "1.2.0"

var DefaultMetadata = Metadata{
	Xmlns:    "http://www.forensicswiki.org/wiki/Category:Digital_Forensics_XML",
	XmlnsXsi: "http://www.w3.org/2001/XMLSchema-instance",
	XmlnsDC:  "http://purl.org/dc/elements/1.1/",
	Type:     "File Type Report",
}

// DFXMLHeader is everything that precedes the file objects of a document.
type DFXMLHeader struct {
	XmlOutput string
	Metadata  Metadata
	Creator   Creator
	Source    Source
}

type Metadata struct {
	XMLName  xml.Name `xml:"metadata"`
	Xmlns    string   `xml:"xmlns,attr"`
	XmlnsXsi string   `xml:"xmlns:xsi,attr"`
	XmlnsDC  string   `xml:"xmlns:dc,attr"`
	Type     string   `xml:"dc:type"`
}

// Creator describes the program that produced the document.
type Creator struct {
	XMLName              xml.Name `xml:"creator"`
	Package              string   `xml:"package"`
	Version              string   `xml:"version"`
	ExecutionEnvironment ExecEnv  `xml:"execution_environment"`
}

type ExecEnv struct {
	OS          string `xml:"os_sysname"`
	Release     string `xml:"os_release"`
	Version     string `xml:"os_version"`
	Host        string `xml:"host"`
	Arch        string `xml:"arch"`
	CommandLine string `xml:"command_line,omitempty"`
	UID         int    `xml:"uid"`
	Start       string `xml:"start_time"`
	RunID       string `xml:"run_id,omitempty"`
}

// Source lists the paths the report was produced from.
type Source struct {
	XMLName xml.Name `xml:"source"`
	Paths   []string `xml:"image_filename"`
}

// FileObject is one classified file or directory.
type FileObject struct {
	XMLName  xml.Name `xml:"fileobject"`
	Filename string   `xml:"filename"`
	NameType string   `xml:"name_type"`
	FileSize *uint64  `xml:"filesize,omitempty"`
	// Libmagic carries the type description, as fiwalk does.
	Libmagic   string      `xml:"libmagic"`
	Source     string      `xml:"match_source,omitempty"`
	HashDigest *HashDigest `xml:"hashdigest,omitempty"`
}

const (
	NameTypeRegular   = "r"
	NameTypeDirectory = "d"
)

type HashDigest struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

// GetExecEnv describes the running process and host.
func GetExecEnv() ExecEnv {
	sinfo, err := sysinfo.Stat()
	if err != nil {
		sinfo = &sysinfo.SysUnknown
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	uid := 0
	if currentUser, err := user.Current(); err == nil {
		if n, err := strconv.Atoi(currentUser.Uid); err == nil {
			uid = n
		}
	}

	return ExecEnv{
		OS:      sinfo.Name,
		Release: sinfo.Release,
		Version: sinfo.Version,
		Host:    host,
		Arch:    runtime.GOARCH,
		UID:     uid,
		Start:   time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}
