package identify

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/ostafen/ftype/pkg/checksum"
	"github.com/ostafen/ftype/pkg/magic"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var (
	pngData  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
	pdfData  = []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")
	textData = []byte("just some plain words\n")
)

func writeFile(t *testing.T, path string, data []byte) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func newClassifier(t *testing.T, opts Options) *Classifier {
	t.Helper()
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func paths(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Path
	}
	return out
}

// sampleTree creates
//
//	root/
//	  a.png
//	  docs/
//	    b.pdf
//	    deep/
//	      c.txt
//	  empty/
func sampleTree(t *testing.T) string {
	root := filepath.Join(t.TempDir(), "root")
	writeFile(t, filepath.Join(root, "a.png"), pngData)
	writeFile(t, filepath.Join(root, "docs", "b.pdf"), pdfData)
	writeFile(t, filepath.Join(root, "docs", "deep", "c.txt"), textData)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0755))
	return root
}

func TestClassifyBytes(t *testing.T) {
	rec, ok := ClassifyBytes([]byte{0x89, 0x50, 0x4E, 0x47, 0xAA, 0xBB})
	require.True(t, ok)
	require.Equal(t, "PNG image", rec.Description)
	require.Equal(t, magic.SourceSignature, rec.Source)
	require.Empty(t, rec.Path)

	size, ok := rec.SizeBytes()
	require.True(t, ok)
	require.Equal(t, uint64(6), size)

	_, ok = ClassifyBytes([]byte{0x00, 0x00})
	require.False(t, ok)
}

func TestClassifierClassifyBytes(t *testing.T) {
	c := newClassifier(t, Options{Checksum: checksum.XXHash})

	rec, ok, err := c.ClassifyBytes(pngData)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "PNG image", rec.Description)

	want, err := checksum.Sum(checksum.XXHash, pngData)
	require.NoError(t, err)
	require.Equal(t, want, rec.Checksum)

	_, ok, err = c.ClassifyBytes(textData)
	require.NoError(t, err)
	require.False(t, ok)

	// a digest failure surfaces the same way ClassifyPath reports it
	c.hash = "md4"
	_, ok, err = c.ClassifyBytes(pngData)
	require.ErrorIs(t, err, checksum.ErrUnsupported)
	require.False(t, ok)

	_, err = c.ClassifyPath(writeFile(t, filepath.Join(t.TempDir(), "a.png"), pngData))
	require.ErrorIs(t, err, checksum.ErrUnsupported)
}

func TestNewDefaultsToSilentLogger(t *testing.T) {
	c := newClassifier(t, Options{})

	l, ok := c.log.(*logrus.Logger)
	require.True(t, ok)
	require.Equal(t, io.Discard, l.Out)
	require.Equal(t, logrus.PanicLevel, l.GetLevel())
}

func TestClassifyPathDirectory(t *testing.T) {
	root := sampleTree(t)
	c := newClassifier(t, Options{Checksum: checksum.XXHash})

	for _, dir := range []string{root, filepath.Join(root, "empty")} {
		rec, err := c.ClassifyPath(dir)
		require.NoError(t, err)
		require.True(t, rec.IsDir)
		require.Nil(t, rec.Size)
		require.Equal(t, DirectoryDescription, rec.Description)
		require.Equal(t, magic.SourceNone, rec.Source)
		require.Empty(t, rec.Checksum)
	}
}

func TestClassifyPathFiles(t *testing.T) {
	root := sampleTree(t)
	c := newClassifier(t, Options{})

	rec, err := c.ClassifyPath(filepath.Join(root, "a.png"))
	require.NoError(t, err)
	require.Equal(t, "PNG image", rec.Description)
	require.False(t, rec.IsDir)
	require.Equal(t, uint64(len(pngData)), *rec.Size)

	rec, err = c.ClassifyPath(filepath.Join(root, "docs", "deep", "c.txt"))
	require.NoError(t, err)
	require.Equal(t, UnknownDescription, rec.Description)
	require.Equal(t, magic.SourceNone, rec.Source)
	require.Equal(t, uint64(len(textData)), *rec.Size)
}

func TestClassifyPathMmap(t *testing.T) {
	root := sampleTree(t)
	c := newClassifier(t, Options{FS: OSFS{MmapThreshold: 1}, Checksum: checksum.SHA256})

	rec, err := c.ClassifyPath(filepath.Join(root, "docs", "b.pdf"))
	require.NoError(t, err)
	require.Equal(t, "PDF document", rec.Description)

	want, err := checksum.Sum(checksum.SHA256, pdfData)
	require.NoError(t, err)
	require.Equal(t, want, rec.Checksum)
}

func TestClassifyPathSizeFromStat(t *testing.T) {
	fsys := &faultyFS{
		FS:    FromFS(fstest.MapFS{"grown.png": {Data: pngData}}),
		sizes: map[string]int64{"grown.png": 4096},
	}
	c := newClassifier(t, Options{FS: fsys})

	rec, err := c.ClassifyPath("grown.png")
	require.NoError(t, err)
	require.Equal(t, uint64(4096), *rec.Size)
}

func TestClassifyPathIOError(t *testing.T) {
	fsys := &faultyFS{
		FS:       FromFS(fstest.MapFS{"secret.bin": {Data: pdfData}}),
		openErrs: map[string]error{"secret.bin": fs.ErrPermission},
	}
	c := newClassifier(t, Options{FS: fsys})

	_, err := c.ClassifyPath("secret.bin")
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "secret.bin", ioErr.Path)
	require.ErrorIs(t, err, fs.ErrPermission)

	_, err = c.ClassifyPath("missing.bin")
	require.ErrorAs(t, err, &ioErr)
}

func TestClassifyBatch(t *testing.T) {
	root := sampleTree(t)
	c := newClassifier(t, Options{})

	in := []string{
		filepath.Join(root, "docs", "b.pdf"),
		filepath.Join(root, "docs"),
		filepath.Join(root, "a.png"),
	}
	records, err := c.ClassifyBatch(in)
	require.NoError(t, err)
	require.Equal(t, in, paths(records))
	require.Equal(t, "PDF document", records[0].Description)
	require.True(t, records[1].IsDir)
	require.Equal(t, "PNG image", records[2].Description)
}

func TestClassifyBatchMissingPath(t *testing.T) {
	root := sampleTree(t)
	c := newClassifier(t, Options{})

	missing := filepath.Join(root, "nope.png")
	records, err := c.ClassifyBatch([]string{filepath.Join(root, "a.png"), missing, filepath.Join(root, "docs")})
	require.Nil(t, records)
	require.ErrorIs(t, err, ErrPathNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, missing, nf.Path)
}

func TestClassifyTreeVisitsEveryEntryOnce(t *testing.T) {
	root := sampleTree(t)
	c := newClassifier(t, Options{})

	records, err := c.ClassifyTree(root)
	require.NoError(t, err)

	// root, a.png, docs, docs/b.pdf, docs/deep, docs/deep/c.txt, empty
	require.Len(t, records, 7)
	require.Equal(t, root, records[0].Path)
	require.True(t, records[0].IsDir)

	seen := make(map[string]int)
	for _, r := range records {
		seen[r.Path]++
	}
	require.Len(t, seen, 7)
	for p, n := range seen {
		require.Equal(t, 1, n, p)
	}

	_, err = c.ClassifyTree(filepath.Join(root, "missing"))
	require.ErrorIs(t, err, ErrPathNotFound)
}

func TestClassifyTreeThroughSymlinkedRoot(t *testing.T) {
	root := sampleTree(t)
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(root, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	// links below the root are recorded but not expanded
	inner := filepath.Join(root, "docs-link")
	require.NoError(t, os.Symlink(filepath.Join(root, "docs"), inner))

	c := newClassifier(t, Options{})

	direct, err := c.ClassifyTree(root)
	require.NoError(t, err)
	require.Len(t, direct, 8)

	linked, err := c.ClassifyTree(link)
	require.NoError(t, err)
	require.Len(t, linked, len(direct))
	require.Equal(t, link, linked[0].Path)
	require.True(t, linked[0].IsDir)
	for i, r := range linked {
		rel, err := filepath.Rel(root, direct[i].Path)
		require.NoError(t, err)
		require.Equal(t, filepath.Join(link, rel), r.Path)
		require.Equal(t, direct[i].Description, r.Description)
	}

	records, err := c.ClassifyBatchRecursive([]string{link})
	require.NoError(t, err)
	require.Equal(t, paths(linked), paths(records))
}

func TestClassifyTreeOnFile(t *testing.T) {
	root := sampleTree(t)
	c := newClassifier(t, Options{})

	records, err := c.ClassifyTree(filepath.Join(root, "a.png"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "PNG image", records[0].Description)
}

func TestClassifyBatchRecursiveSplicesTrees(t *testing.T) {
	root := sampleTree(t)
	c := newClassifier(t, Options{})

	png := filepath.Join(root, "a.png")
	docs := filepath.Join(root, "docs")
	records, err := c.ClassifyBatchRecursive([]string{png, docs, png})
	require.NoError(t, err)
	require.Equal(t, []string{
		png,
		docs,
		filepath.Join(docs, "b.pdf"),
		filepath.Join(docs, "deep"),
		filepath.Join(docs, "deep", "c.txt"),
		png,
	}, paths(records))

	records, err = c.ClassifyBatchRecursive([]string{png, filepath.Join(root, "missing")})
	require.Nil(t, records)
	require.ErrorIs(t, err, ErrPathNotFound)
}

func TestTraversalError(t *testing.T) {
	fsys := &faultyFS{
		FS: FromFS(fstest.MapFS{
			"tree/ok.png":          {Data: pngData},
			"tree/locked/file.pdf": {Data: pdfData},
		}),
		walkErrs: map[string]error{"tree/locked": fs.ErrPermission},
	}
	c := newClassifier(t, Options{FS: fsys})

	records, err := c.ClassifyTree("tree")
	require.Nil(t, records)

	var te *TraversalError
	require.ErrorAs(t, err, &te)
	require.Equal(t, "tree/locked", te.Path)
	require.ErrorIs(t, err, fs.ErrPermission)
}

func TestIOErrorInsideTreeIsNotTraversalError(t *testing.T) {
	fsys := &faultyFS{
		FS: FromFS(fstest.MapFS{
			"tree/a.png": {Data: pngData},
			"tree/b.pdf": {Data: pdfData},
		}),
		openErrs: map[string]error{"tree/b.pdf": errors.New("device unplugged")},
	}
	c := newClassifier(t, Options{FS: fsys})

	_, err := c.ClassifyBatchRecursive([]string{"tree"})

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "tree/b.pdf", ioErr.Path)

	var te *TraversalError
	require.False(t, errors.As(err, &te))
}

func TestClassifyEachKeepsGoing(t *testing.T) {
	root := sampleTree(t)
	c := newClassifier(t, Options{})

	missing := filepath.Join(root, "missing")
	outcomes := c.ClassifyEach([]string{filepath.Join(root, "docs"), missing, filepath.Join(root, "a.png")}, true)
	require.Len(t, outcomes, 3)
	require.NoError(t, outcomes[0].Err)
	require.Len(t, outcomes[0].Records, 4)
	require.ErrorIs(t, outcomes[1].Err, ErrPathNotFound)
	require.Nil(t, outcomes[1].Records)
	require.NoError(t, outcomes[2].Err)

	records, errs := Records(outcomes)
	require.Len(t, records, 5)
	require.Len(t, errs, 1)

	// non-recursive: directories stay single records
	outcomes = c.ClassifyEach([]string{filepath.Join(root, "docs")}, false)
	require.Len(t, outcomes[0].Records, 1)
	require.True(t, outcomes[0].Records[0].IsDir)
}

func TestOnRecord(t *testing.T) {
	root := sampleTree(t)

	var seen []string
	c := newClassifier(t, Options{OnRecord: func(r Record) { seen = append(seen, r.Path) }})

	records, err := c.ClassifyTree(root)
	require.NoError(t, err)
	require.Equal(t, paths(records), seen)
}

func TestChecksum(t *testing.T) {
	root := sampleTree(t)
	c := newClassifier(t, Options{Checksum: checksum.BLAKE3})

	rec, err := c.ClassifyPath(filepath.Join(root, "a.png"))
	require.NoError(t, err)

	want, err := checksum.Sum(checksum.BLAKE3, pngData)
	require.NoError(t, err)
	require.Equal(t, want, rec.Checksum)

	_, err = New(Options{Checksum: "md4"})
	require.ErrorIs(t, err, checksum.ErrUnsupported)
}

func TestCustomMatcher(t *testing.T) {
	m := magic.Chain{magic.NewSignatureMatcher([]magic.Signature{
		{Offset: 0, Magic: []byte("just"), Description: "Just text"},
	})}
	c := newClassifier(t, Options{
		FS:      FromFS(fstest.MapFS{"note.txt": {Data: textData}}),
		Matcher: m,
	})

	rec, err := c.ClassifyPath("note.txt")
	require.NoError(t, err)
	require.Equal(t, "Just text", rec.Description)
}

// faultyFS injects failures into an FS.
type faultyFS struct {
	FS
	sizes    map[string]int64
	openErrs map[string]error
	walkErrs map[string]error
}

type sizedInfo struct {
	fs.FileInfo
	size int64
}

func (s sizedInfo) Size() int64 { return s.size }

func (f *faultyFS) Stat(path string) (fs.FileInfo, error) {
	fi, err := f.FS.Stat(path)
	if err != nil {
		return nil, err
	}
	if size, ok := f.sizes[path]; ok {
		return sizedInfo{FileInfo: fi, size: size}, nil
	}
	return fi, nil
}

func (f *faultyFS) Open(path string) (Content, error) {
	if err, ok := f.openErrs[path]; ok {
		return nil, err
	}
	return f.FS.Open(path)
}

func (f *faultyFS) Walk(root string, fn WalkFunc) error {
	return f.FS.Walk(root, func(path string, err error) error {
		if err == nil {
			if werr, ok := f.walkErrs[path]; ok {
				err = werr
			}
		}
		return fn(path, err)
	})
}
