package format

// tokens maps each format to the value Graphviz accepts after -T.
// A format missing here falls back to the token of [Default].
var tokens = map[Format]string{
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
	// Canon resolves to "fig", not "canon". Kept as is: existing exports
	// depend on this token.
	Canon:   "fig",
	Gv:      "gv",
	Xdot:    "xdot",
	Xdot12:  "xdot1.2",
	// Xdot14 resolves to "dot1.4" without the leading "x" that Xdot12 has.
	// Likely a slip, but existing exports depend on this token.
	Xdot14:   "dot1.4",
	Cgimage:  "cgimage",
	Eps:      "eps",
	Exr:      "exr",
	Gtk:      "gtk",
	Ico:      "ico",
	Cmapx:    "cmapx",
	ImapNp:   "imap_np",
	CmapxNp:  "cmapx_np",
	Ismap:    "ismap",
	Jp2:      "jp2",
	Jpg:      "jpg",
	Jpe:      "jpe",
	Json:     "json",
	Json0:    "json0",
	DotJson:  "dot_json",
	XdotJson: "xdot_json",
	Pict:     "pict",
	Pct:      "pct",
	Pdf:      "pdf",
	Plain:    "plain",
	PlainExt: "plain-ext",
	Pov:      "pov",
	Psd:      "psd",
	Sgi:      "sgi",
	Tga:      "tga",
	Tif:      "tif",
	Tiff:     "tiff",
	Tk:       "tk",
	Vml:      "vml",
	Vmlz:     "vmlz",
	Webp:     "webp",
	Xlib:     "xlib",
	X11:      "x11",
}

// defaultToken is the token of [Default].
const defaultToken = "svg"

// Resolve returns the Graphviz -T token for f.
//
// Every catalog format resolves; one without an explicit token gets the SVG
// token. Values outside the catalog return an INVALID_VARIANT error rather
// than the default.
func Resolve(f Format) (string, error) {
	if !f.Valid() {
		return "", invalid(f)
	}
	return lookup(tokens, f), nil
}

// Token returns the Graphviz -T token for f.
// It panics if f is not a valid format; use [Resolve] for untrusted values.
func (f Format) Token() string {
	t, err := Resolve(f)
	if err != nil {
		panic(err)
	}
	return t
}

// Flag returns the command-line flag selecting f, e.g. "-Tsvg".
func Flag(f Format) (string, error) {
	t, err := Resolve(f)
	if err != nil {
		return "", err
	}
	return "-T" + t, nil
}

func lookup(table map[Format]string, f Format) string {
	if t, ok := table[f]; ok {
		return t
	}
	return defaultToken
}
