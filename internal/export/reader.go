// Package export reads the health export document.
//
// The document is one large XML file whose top-level children are typed
// elements with flat attribute sets. It is read exactly once, on the
// coordinating goroutine, before any batch is dispatched.
package export

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	apperrors "github.com/mereldawu/ipyhealth/errors"
	"github.com/mereldawu/ipyhealth/internal/coerce"
	"github.com/mereldawu/ipyhealth/internal/logging"
	"github.com/mereldawu/ipyhealth/types"
)

var log = logging.Component("export")

// Document is the parsed export: the record elements retained for table
// building plus the export's own metadata.
type Document struct {
	Elements []types.Element
	Info     types.ExportInfo
}

// characteristicPrefix is the vendor prefix on Me attribute names.
const characteristicPrefix = "HKCharacteristicTypeIdentifier"

// ReadFile opens and reads the export document, keeping only elements whose
// tag the keep function accepts.
func ReadFile(path string, keep func(tag string) bool) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrExportMissing, "%s", path)
	}
	defer f.Close()

	doc, err := Read(f, keep)
	if err != nil {
		return nil, apperrors.Wrapf(err, "read %s", path)
	}
	return doc, nil
}

// Read streams the export document from r. Elements are collected at the
// first nesting level under the document root; nested markup (metadata
// entries and the like) is skipped, matching the flat-attribute data model.
func Read(r io.Reader, keep func(tag string) bool) (*Document, error) {
	dec := xml.NewDecoder(r)
	doc := &Document{}
	depth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrMalformedExport, err.Error())
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth != 2 {
				continue
			}

			tag := t.Name.Local
			switch {
			case tag == "Me":
				readInfo(&doc.Info, t)
			case tag == "ExportDate":
				readExportDate(&doc.Info, t)
			case keep(tag):
				doc.Elements = append(doc.Elements, toElement(t))
			}

			// Consume the subtree; attributes are all we need.
			if err := dec.Skip(); err != nil {
				return nil, apperrors.Wrap(apperrors.ErrMalformedExport, err.Error())
			}
			depth--

		case xml.EndElement:
			depth--
		}
	}

	log.Debug("export read", "elements", len(doc.Elements))
	return doc, nil
}

func toElement(t xml.StartElement) types.Element {
	attrs := make(map[string]string, len(t.Attr))
	for _, a := range t.Attr {
		attrs[a.Name.Local] = a.Value
	}
	return types.Element{Tag: t.Name.Local, Attrs: attrs}
}

// readInfo cleans the Me element's characteristics: the vendor prefix is
// stripped from the attribute name and the name plus "HK" from the value,
// so "HKBiologicalSexFemale" becomes "Female".
func readInfo(info *types.ExportInfo, t xml.StartElement) {
	for _, a := range t.Attr {
		key := strings.TrimPrefix(a.Name.Local, characteristicPrefix)
		val := strings.ReplaceAll(a.Value, key, "")
		val = strings.ReplaceAll(val, "HK", "")

		switch key {
		case "DateOfBirth":
			info.DateOfBirth = val
		case "BiologicalSex":
			info.BiologicalSex = val
		case "BloodType":
			info.BloodType = val
		case "FitzpatrickSkinType":
			info.SkinType = val
		default:
			if info.Characteristics == nil {
				info.Characteristics = make(map[string]string)
			}
			info.Characteristics[key] = val
		}
	}
}

func readExportDate(info *types.ExportInfo, t xml.StartElement) {
	for _, a := range t.Attr {
		if a.Name.Local != "value" {
			continue
		}
		d, err := coerce.Date(a.Value)
		if err != nil {
			log.Warn("export date not parseable", "value", a.Value)
			return
		}
		info.ExportDate = d
	}
}
