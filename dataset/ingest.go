package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/torvik/augmenta/annot"
)

var (
	// ErrIngestSpec indicates an IngestSpec that cannot describe a load.
	ErrIngestSpec = errors.New("dataset: invalid ingest spec")
	// ErrBadRecord indicates an annotation record the field mapping
	// cannot extract.
	ErrBadRecord = errors.New("dataset: bad annotation record")
)

// BoxLayout names the coordinate convention of ingested bounding boxes.
// Every layout is converted to min/max corners on load.
type BoxLayout int

const (
	// BoxMinMax reads x_min, y_min, x_max, y_max.
	BoxMinMax BoxLayout = iota
	// BoxMinSize reads x_min, y_min, width, height (COCO convention).
	BoxMinSize
	// BoxCenterSize reads x_center, y_center, width, height (YOLO convention).
	BoxCenterSize
)

// IngestSpec maps the fields of an external annotation file onto the
// annotation model. Field names address object keys for JSON/YAML records
// and CSV/TXT files with a header row; headerless CSV/TXT columns are
// addressed by decimal index ("0", "1", ...).
type IngestSpec struct {
	// Format is the annotation file type: json, yaml, csv or txt.
	Format string
	// Records is the key holding the record list in a JSON/YAML document.
	// Empty means the document itself is the list.
	Records string
	// ImageRef is the field carrying the image reference of a record.
	// Empty falls back to the annotation file name without extension,
	// which only works when each image has its own annotation file.
	ImageRef string
	// LabelID and LabelName address the class of a record. At least one
	// must be set.
	LabelID   string
	LabelName string
	// Box addresses the bounding box: either one field holding a list of
	// four numbers, or four scalar fields in Layout order.
	Box []string
	// Layout fixes how the four box numbers are interpreted.
	Layout BoxLayout
}

func (s IngestSpec) validate() error {
	switch s.Format {
	case "json", "yaml", "csv", "txt":
	default:
		return fmt.Errorf("%w: unknown format %q", ErrIngestSpec, s.Format)
	}
	if s.LabelID == "" && s.LabelName == "" {
		return fmt.Errorf("%w: need a label id or a label name field", ErrIngestSpec)
	}
	switch len(s.Box) {
	case 1, 4:
	default:
		return fmt.Errorf("%w: box needs 1 list field or 4 scalar fields, got %d", ErrIngestSpec, len(s.Box))
	}
	switch s.Layout {
	case BoxMinMax, BoxMinSize, BoxCenterSize:
	default:
		return fmt.Errorf("%w: unknown box layout %d", ErrIngestSpec, s.Layout)
	}

	return nil
}

// record is one flattened annotation row. Headerless CSV/TXT rows are keyed
// by column index.
type record map[string]any

// Ingest loads external annotations into Packages, one per referenced
// image. annotPath names either a single file holding every record, or a
// directory whose files (matching the spec format's extension) each hold
// the records of one image. Image references resolve against imgDir; a
// reference without extension probes the known image extensions.
// Complexity: O(records) plus one header decode per referenced image.
func Ingest(imgDir, annotPath string, spec IngestSpec) ([]*Package, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	recs, err := loadRecords(annotPath, spec)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*annot.Annotations)
	var refs []string
	for _, rec := range recs {
		ref, err := rec.ref(spec)
		if err != nil {
			return nil, err
		}
		as, ok := grouped[ref]
		if !ok {
			path, err := resolveImage(imgDir, ref)
			if err != nil {
				return nil, err
			}
			w, h, err := imageDims(path)
			if err != nil {
				return nil, fmt.Errorf("dataset: read header of %q: %w", path, err)
			}
			as = annot.NewAnnotations(w, h, annot.BBox)
			grouped[ref] = as
			refs = append(refs, ref)
		}
		label, pts, err := rec.extract(spec)
		if err != nil {
			return nil, err
		}
		if err = as.Add(label, pts); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
		}
	}

	sort.Strings(refs)
	pkgs := make([]*Package, len(refs))
	for i, ref := range refs {
		path, err := resolveImage(imgDir, ref)
		if err != nil {
			return nil, err
		}
		pkgs[i] = NewPackage(path, grouped[ref])
	}

	return pkgs, nil
}

// loadRecords reads every annotation record under annotPath. A directory
// is walked file by file so per-image annotation sets keep their file name
// as the implicit image reference.
func loadRecords(annotPath string, spec IngestSpec) ([]record, error) {
	info, err := os.Stat(annotPath)
	if err != nil {
		return nil, fmt.Errorf("dataset: stat %q: %w", annotPath, err)
	}
	if !info.IsDir() {
		return loadFile(annotPath, spec)
	}

	entries, err := os.ReadDir(annotPath)
	if err != nil {
		return nil, fmt.Errorf("dataset: read dir %q: %w", annotPath, err)
	}
	var recs []record
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), "."+spec.Format) {
			continue
		}
		fileRecs, err := loadFile(filepath.Join(annotPath, e.Name()), spec)
		if err != nil {
			return nil, err
		}
		recs = append(recs, fileRecs...)
	}

	return recs, nil
}

// loadFile parses one annotation file into records. Every record remembers
// the file stem so specs without an image-reference field still resolve.
func loadFile(path string, spec IngestSpec) ([]record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %q: %w", path, err)
	}

	var recs []record
	switch spec.Format {
	case "json":
		recs, err = decodeDocument(raw, spec.Records, json.Unmarshal)
	case "yaml":
		recs, err = decodeDocument(raw, spec.Records, yaml.Unmarshal)
	case "csv":
		rows, csvErr := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
		if csvErr != nil {
			err = csvErr
			break
		}
		recs = rowsToRecords(rows)
	case "txt":
		var rows [][]string
		for _, line := range strings.Split(string(raw), "\n") {
			if fields := strings.Fields(line); len(fields) > 0 {
				rows = append(rows, fields)
			}
		}
		recs = rowsToRecords(rows)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadRecord, path, err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, rec := range recs {
		rec[fileStemKey] = stem
	}

	return recs, nil
}

// fileStemKey carries the annotation file name through a record without
// clashing with user field names, which never contain a NUL.
const fileStemKey = "\x00stem"

// decodeDocument unmarshals a JSON or YAML document and digs out the record
// list named by recordsKey (empty key takes the document itself).
func decodeDocument(raw []byte, recordsKey string, unmarshal func([]byte, any) error) ([]record, error) {
	var doc any
	if err := unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if recordsKey != "" {
		obj, ok := doc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("document is not an object, cannot take %q", recordsKey)
		}
		if doc, ok = obj[recordsKey]; !ok {
			return nil, fmt.Errorf("document has no %q list", recordsKey)
		}
	}
	list, ok := doc.([]any)
	if !ok {
		return nil, errors.New("record list is not a list")
	}

	recs := make([]record, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d is not an object", i)
		}
		recs[i] = record(obj)
	}

	return recs, nil
}

// rowsToRecords turns CSV/TXT rows into records. The first row is taken as
// a header when none of its cells parses as a number; otherwise columns are
// keyed by index.
func rowsToRecords(rows [][]string) []record {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0]
	isHeader := true
	for _, cell := range header {
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			isHeader = false
			break
		}
	}
	if isHeader {
		rows = rows[1:]
	}

	recs := make([]record, len(rows))
	for i, row := range rows {
		rec := make(record, len(row))
		for j, cell := range row {
			if isHeader && j < len(header) {
				rec[header[j]] = cell
			} else {
				rec[strconv.Itoa(j)] = cell
			}
		}
		recs[i] = rec
	}

	return recs
}

// ref returns the image reference of a record, falling back to the stem of
// the annotation file the record came from.
func (r record) ref(spec IngestSpec) (string, error) {
	if spec.ImageRef == "" {
		return r[fileStemKey].(string), nil
	}
	v, ok := r[spec.ImageRef]
	if !ok {
		return "", fmt.Errorf("%w: no image reference field %q", ErrBadRecord, spec.ImageRef)
	}

	return fmt.Sprintf("%v", v), nil
}

// extract reads the label and the min/max box corners of one record.
func (r record) extract(spec IngestSpec) (annot.Label, []annot.Point, error) {
	id := annot.UnsetID
	if spec.LabelID != "" {
		f, err := r.number(spec.LabelID)
		if err != nil {
			return annot.Label{}, nil, err
		}
		id = int(f)
	}
	var name string
	if spec.LabelName != "" {
		v, ok := r[spec.LabelName]
		if !ok {
			return annot.Label{}, nil, fmt.Errorf("%w: no label name field %q", ErrBadRecord, spec.LabelName)
		}
		name = fmt.Sprintf("%v", v)
	}
	label, err := annot.NewLabel(id, name)
	if err != nil {
		return annot.Label{}, nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}

	box, err := r.box(spec)
	if err != nil {
		return annot.Label{}, nil, err
	}
	var pts []annot.Point
	switch spec.Layout {
	case BoxMinMax:
		pts = []annot.Point{{box[0], box[1]}, {box[2], box[3]}}
	case BoxMinSize:
		pts = []annot.Point{{box[0], box[1]}, {box[0] + box[2], box[1] + box[3]}}
	case BoxCenterSize:
		pts = []annot.Point{
			{box[0] - box[2]/2, box[1] - box[3]/2},
			{box[0] + box[2]/2, box[1] + box[3]/2},
		}
	}

	return label, pts, nil
}

// box reads the four box numbers, either from one list field or from four
// scalar fields.
func (r record) box(spec IngestSpec) ([4]float64, error) {
	var box [4]float64
	if len(spec.Box) == 1 {
		v, ok := r[spec.Box[0]]
		if !ok {
			return box, fmt.Errorf("%w: no box field %q", ErrBadRecord, spec.Box[0])
		}
		list, ok := v.([]any)
		if !ok || len(list) < 4 {
			return box, fmt.Errorf("%w: box field %q is not a list of 4 numbers", ErrBadRecord, spec.Box[0])
		}
		for i := range box {
			f, err := toFloat(list[i])
			if err != nil {
				return box, fmt.Errorf("%w: box field %q: %v", ErrBadRecord, spec.Box[0], err)
			}
			box[i] = f
		}

		return box, nil
	}

	for i, field := range spec.Box {
		f, err := r.number(field)
		if err != nil {
			return box, err
		}
		box[i] = f
	}

	return box, nil
}

// number reads one numeric field of a record.
func (r record) number(field string) (float64, error) {
	v, ok := r[field]
	if !ok {
		return 0, fmt.Errorf("%w: no field %q", ErrBadRecord, field)
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, fmt.Errorf("%w: field %q: %v", ErrBadRecord, field, err)
	}

	return f, nil
}

// toFloat coerces the scalar types the decoders produce into a float64.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("value %v is not a number", v)
	}
}

// resolveImage maps an image reference to a file under imgDir, probing the
// known image extensions when the reference has none.
func resolveImage(imgDir, ref string) (string, error) {
	if isImagePath(ref) {
		path := filepath.Join(imgDir, filepath.FromSlash(ref))
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("dataset: image %q: %w", path, err)
		}

		return path, nil
	}
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		path := filepath.Join(imgDir, filepath.FromSlash(ref)+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("dataset: no image found for reference %q under %q", ref, imgDir)
}
