package format

import (
	"strconv"
	"strings"

	"github.com/matzehuels/gvexport/pkg/errors"
)

// Format identifies one Graphviz output format.
//
// The set is closed: only the constants below are valid. Ordinals are part of
// the public contract and never change once a format is introduced.
type Format int

// Output formats supported by Graphviz, see https://graphviz.org/docs/outputs/.
const (
	Fig Format = iota
	Gd
	Gd2
	Gif
	Hpgl
	Imap
	Cmap
	Jpeg
	Mif
	Mp
	Pcl
	Pic
	PlainText
	Png
	Ps
	Ps2
	Svg
	Svgz
	Vrml
	Vtx
	Wbmp
	Bmp
	Canon
	Gv
	Xdot
	Xdot12
	Xdot14
	Cgimage
	Eps
	Exr
	Gtk
	Ico
	Cmapx
	ImapNp
	CmapxNp
	Ismap
	Jp2
	Jpg
	Jpe
	Json
	Json0
	DotJson
	XdotJson
	Pict
	Pct
	Pdf
	Plain
	PlainExt
	Pov
	Psd
	Sgi
	Tga
	Tif
	Tiff
	Tk
	Vml
	Vmlz
	Webp
	Xlib
	X11

	numFormats
)

// Default is the format used when nothing else is requested. Formats without
// an explicit token resolve to its token.
const Default = Svg

// names holds the catalog name of each format. Names are what users type and
// what config files and API payloads carry.
var names = [numFormats]string{
	Fig:       "fig",
	Gd:        "gd",
	Gd2:       "gd2",
	Gif:       "gif",
	Hpgl:      "hpgl",
	Imap:      "imap",
	Cmap:      "cmap",
	Jpeg:      "jpeg",
	Mif:       "mif",
	Mp:        "mp",
	Pcl:       "pcl",
	Pic:       "pic",
	PlainText: "plaintext",
	Png:       "png",
	Ps:        "ps",
	Ps2:       "ps2",
	Svg:       "svg",
	Svgz:      "svgz",
	Vrml:      "vrml",
	Vtx:       "vtx",
	Wbmp:      "wbmp",
	Bmp:       "bmp",
	Canon:     "canon",
	Gv:        "gv",
	Xdot:      "xdot",
	Xdot12:    "xdot12",
	Xdot14:    "xdot14",
	Cgimage:   "cgimage",
	Eps:       "eps",
	Exr:       "exr",
	Gtk:       "gtk",
	Ico:       "ico",
	Cmapx:     "cmapx",
	ImapNp:    "imap_np",
	CmapxNp:   "cmapx_np",
	Ismap:     "ismap",
	Jp2:       "jp2",
	Jpg:       "jpg",
	Jpe:       "jpe",
	Json:      "json",
	Json0:     "json0",
	DotJson:   "dot_json",
	XdotJson:  "xdot_json",
	Pict:      "pict",
	Pct:       "pct",
	Pdf:       "pdf",
	Plain:     "plain",
	PlainExt:  "plain-ext",
	Pov:       "pov",
	Psd:       "psd",
	Sgi:       "sgi",
	Tga:       "tga",
	Tif:       "tif",
	Tiff:      "tiff",
	Tk:        "tk",
	Vml:       "vml",
	Vmlz:      "vmlz",
	Webp:      "webp",
	Xlib:      "xlib",
	X11:       "x11",
}

var descriptions = [numFormats]string{
	Fig:       "Figure format",
	Gd:        "Gd format",
	Gd2:       "Gd2 format",
	Gif:       "GIF format",
	Hpgl:      "HP-GL/2 format",
	Imap:      "Server-side imagemaps",
	Cmap:      "Client-side imagemaps Format (deprecated)",
	Jpeg:      "JPEG format",
	Mif:       "FrameMaker MIF format",
	Mp:        "MetaPost",
	Pcl:       "PCL format",
	Pic:       "Kernighan's PIC Graphics Language Format",
	PlainText: "Plain Text format",
	Png:       "Portable Network Graphics format",
	Ps:        "Postscript",
	Ps2:       "PostScript for PDF",
	Svg:       "Scalable Vector Graphics",
	Svgz:      "Scalable Vector Graphics, gzipped",
	Vrml:      "VRML",
	Vtx:       "Visual Thought format",
	Wbmp:      "Wireless BitMap format",
	Bmp:       "Windows Bitmap Format",
	Canon:     "DOT Format",
	Gv:        "DOT Format",
	Xdot:      "DOT Format",
	Xdot12:    "DOT Format",
	Xdot14:    "DOT Format",
	Cgimage:   "CGImage bitmap Format",
	Eps:       "Encapsulated PostScript Format",
	Exr:       "OpenEXR Format",
	Gtk:       "GTK Canvas Format",
	Ico:       "Icon Image File Format",
	Cmapx:     "Client-side imagemaps Format",
	ImapNp:    "Server-side imagemaps Format",
	CmapxNp:   "Client-side imagemaps Format",
	Ismap:     "Server-side imagemaps Format (deprecated)",
	Jp2:       "JPEG 2000 Format",
	Jpg:       "JPEG Format",
	Jpe:       "JPEG Format",
	Json:      "Dot Graph Represented in JSON Format",
	Json0:     "Dot Graph Represented in JSON Format",
	DotJson:   "Dot Graph Represented in JSON Format",
	XdotJson:  "Dot Graph Represented in JSON Format",
	Pict:      "PICT Format",
	Pct:       "PICT Format",
	Pdf:       "Portable Document Format (PDF) Format",
	Plain:     "Plain-text Format",
	PlainExt:  "Plain-text Format",
	Pov:       "POV-Ray Markup Language (prototype) Format",
	Psd:       "PSD Format",
	Sgi:       "SGI Format",
	Tga:       "Truevision TGA Format",
	Tif:       "Tag Image File Format (TIFF) Format",
	Tiff:      "Tag Image File Format (TIFF) Format",
	Tk:        "TK Graphics Format",
	Vml:       "Vector Markup Language (VML) Format",
	Vmlz:      "Vector Markup Language (VML) Format",
	Webp:      "Image format for the Web Format",
	Xlib:      "Xlib Canvas Format",
	X11:       "Xlib Canvas Format",
}

var byName = func() map[string]Format {
	m := make(map[string]Format, numFormats)
	for f := Format(0); f < numFormats; f++ {
		m[names[f]] = f
	}
	return m
}()

// All returns every format in declaration order.
// The returned slice is a fresh copy and may be modified by the caller.
func All() []Format {
	out := make([]Format, numFormats)
	for i := range out {
		out[i] = Format(i)
	}
	return out
}

// Valid reports whether f is one of the defined formats.
func (f Format) Valid() bool {
	return f >= 0 && f < numFormats
}

// String returns the catalog name of f, e.g. "xdot14" or "plain-ext".
// Values outside the catalog print as "Format(n)".
func (f Format) String() string {
	if !f.Valid() {
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
	return names[f]
}

// Description returns the human-readable description of f.
// It panics if f is not a valid format.
func (f Format) Description() string {
	d, err := Describe(f)
	if err != nil {
		panic(err)
	}
	return d
}

// Describe returns the human-readable description of f, or an
// INVALID_VARIANT error when f is outside the catalog.
func Describe(f Format) (string, error) {
	if !f.Valid() {
		return "", invalid(f)
	}
	return descriptions[f], nil
}

// Parse looks up a format by catalog name. Matching ignores case and
// surrounding whitespace.
func Parse(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if f, ok := byName[key]; ok {
		return f, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidVariant, "unknown format %q", name)
}

// MarshalText implements encoding.TextMarshaler using the catalog name.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, invalid(f)
	}
	return []byte(names[f]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using [Parse].
func (f *Format) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func invalid(f Format) error {
	return errors.New(errors.ErrCodeInvalidVariant, "format %d is not in the catalog", int(f))
}
