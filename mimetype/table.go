package mimetype

// builtin lists common web content types keyed by extension. Template engine
// extensions (tmpl, gotmpl, tpl, gohtml) are deliberately absent.
var builtin = map[string]string{
	".atom":        "application/atom+xml",
	".avif":        "image/avif",
	".bin":         "application/octet-stream",
	".bmp":         "image/bmp",
	".css":         "text/css",
	".csv":         "text/csv",
	".doc":         "application/msword",
	".eot":         "application/vnd.ms-fontobject",
	".epub":        "application/epub+zip",
	".gif":         "image/gif",
	".gz":          "application/gzip",
	".htm":         "text/html",
	".html":        "text/html",
	".ico":         "image/vnd.microsoft.icon",
	".ics":         "text/calendar",
	".jpeg":        "image/jpeg",
	".jpg":         "image/jpeg",
	".js":          "application/javascript",
	".json":        "application/json",
	".jsonld":      "application/ld+json",
	".m3u8":        "application/vnd.apple.mpegurl",
	".manifest":    "text/cache-manifest",
	".markdown":    "text/markdown",
	".md":          "text/markdown",
	".mjs":         "application/javascript",
	".mp3":         "audio/mpeg",
	".mp4":         "video/mp4",
	".ndjson":      "application/x-ndjson",
	".odt":         "application/vnd.oasis.opendocument.text",
	".ogg":         "audio/ogg",
	".otf":         "font/otf",
	".pdf":         "application/pdf",
	".png":         "image/png",
	".rdf":         "application/rdf+xml",
	".rss":         "application/rss+xml",
	".rtf":         "application/rtf",
	".sh":          "application/x-sh",
	".svg":         "image/svg+xml",
	".tar":         "application/x-tar",
	".text":        "text/plain",
	".tif":         "image/tiff",
	".tiff":        "image/tiff",
	".toml":        "application/toml",
	".ttf":         "font/ttf",
	".tsv":         "text/tab-separated-values",
	".txt":         "text/plain",
	".vcf":         "text/vcard",
	".wasm":        "application/wasm",
	".wav":         "audio/wav",
	".webm":        "video/webm",
	".webmanifest": "application/manifest+json",
	".webp":        "image/webp",
	".woff":        "font/woff",
	".woff2":       "font/woff2",
	".xhtml":       "application/xhtml+xml",
	".xml":         "application/xml",
	".xsl":         "application/xml",
	".xslt":        "application/xslt+xml",
	".yaml":        "text/yaml",
	".yml":         "text/yaml",
	".zip":         "application/zip",
}
