package render

// contentTypes maps engine tokens to media types. Tokens not listed are
// served as application/octet-stream.
var contentTypes = map[string]string{
	"svg":       "image/svg+xml",
	"svgz":      "image/svg+xml",
	"png":       "image/png",
	"gif":       "image/gif",
	"jpg":       "image/jpeg",
	"jpeg":      "image/jpeg",
	"jpe":       "image/jpeg",
	"jp2":       "image/jp2",
	"bmp":       "image/bmp",
	"ico":       "image/x-icon",
	"tif":       "image/tiff",
	"tiff":      "image/tiff",
	"webp":      "image/webp",
	"wbmp":      "image/vnd.wap.wbmp",
	"psd":       "image/vnd.adobe.photoshop",
	"tga":       "image/x-tga",
	"pdf":       "application/pdf",
	"ps":        "application/postscript",
	"ps2":       "application/postscript",
	"eps":       "application/postscript",
	"json":      "application/json",
	"json0":     "application/json",
	"dot_json":  "application/json",
	"xdot_json": "application/json",
	"gv":        "text/vnd.graphviz",
	"xdot":      "text/vnd.graphviz",
	"xdot1.2":   "text/vnd.graphviz",
	"dot1.4":    "text/vnd.graphviz",
	"fig":       "text/plain; charset=utf-8",
	"plain":     "text/plain; charset=utf-8",
	"plain-ext": "text/plain; charset=utf-8",
	"plaintext": "text/plain; charset=utf-8",
	"cmapx":     "text/html; charset=utf-8",
	"cmapx_np":  "text/html; charset=utf-8",
	"vml":       "application/vnd.openxmlformats-officedocument.vmlDrawing",
	"vrml":      "model/vrml",
}

// ContentType returns the media type of output rendered with token.
func ContentType(token string) string {
	if ct, ok := contentTypes[token]; ok {
		return ct
	}
	return "application/octet-stream"
}
