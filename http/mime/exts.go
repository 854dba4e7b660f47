package mime

import "path/filepath"

var Extension = map[string]MIME{
	".css":  CSS,
	".gif":  GIF,
	".htm":  HTML,
	".html": HTML,
	".ico":  ICO,
	".jpeg": JPEG,
	".jpg":  JPEG,
	".js":   JavaScript,
	".mjs":  JavaScript,
	".json": JSON,
	".pdf":  PDF,
	".png":  PNG,
	".svg":  SVG,
	".txt":  Plain,
	".wasm": WASM,
	".webp": WEBP,
	".xml":  XML,
}

// textual MIMEs are served with an explicit utf-8 charset.
var textual = map[MIME]struct{}{
	Plain:      {},
	HTML:       {},
	CSS:        {},
	JavaScript: {},
	JSON:       {},
	XML:        {},
}

// ByFilename returns the MIME corresponding to the file's extension, or OctetStream
// if the extension is unknown.
func ByFilename(filename string) MIME {
	mime, found := Extension[filepath.Ext(filename)]
	if !found {
		return OctetStream
	}

	return mime
}

// ContentType returns the value of the Content-Type header for the MIME.
func ContentType(mime MIME) string {
	if _, ok := textual[mime]; ok {
		return mime + "; charset=utf-8"
	}

	return mime
}
