package manifest

import (
	"errors"
	"fmt"
	"html"
	"path"
	"strings"

	"github.com/fulmenhq/assetsync/pkg/logger"
	"github.com/fulmenhq/assetsync/pkg/safeio"
)

// collectionKeys are the recognized wrapper keys for the asset list, in
// priority order. Only list-valued entries count.
var collectionKeys = []string{"assets", "items", "data", "results"}

// urlKeys are the recognized download URL field names, in priority order.
var urlKeys = []string{"downloadLink", "download_link", "url", "link", "downloadUrl"}

// ErrNoAssetArray indicates the manifest held no usable asset list.
var ErrNoAssetArray = errors.New("no asset array found")

// Asset is a resolved manifest record: where to fetch from and the
// sanitized filename to write.
type Asset struct {
	URL      string
	Filename string
}

// SelectAssets finds the asset list within the parsed manifest. An object is
// scanned for the collection keys in priority order; a top-level array is
// used directly. Anything else fails the batch.
func SelectAssets(data interface{}) ([]interface{}, error) {
	if obj, ok := asObject(data); ok {
		for _, key := range collectionKeys {
			if arr, ok := asArray(obj[key]); ok {
				return arr, nil
			}
		}
	}
	if arr, ok := asArray(data); ok {
		return arr, nil
	}
	return nil, ErrNoAssetArray
}

// ResolveAsset derives the download URL and target filename for one manifest
// record. Records without a usable URL field are reported with ok=false and
// a warning; the batch skips them.
func ResolveAsset(record interface{}) (Asset, bool) {
	obj, ok := asObject(record)
	if !ok {
		logger.Warn("Asset record is not an object", logger.String("record", fmt.Sprintf("%v", record)))
		return Asset{}, false
	}

	rawURL, ok := firstStringField(obj, urlKeys)
	if !ok {
		logger.Warn("No download link found in asset", logger.String("record", fmt.Sprintf("%v", obj)))
		return Asset{}, false
	}

	// Manifests exported from web UIs tend to carry entity-escaped URLs.
	downloadURL := html.UnescapeString(rawURL)

	filename := safeio.SanitizeFilename(deriveFilename(obj, downloadURL))
	return Asset{URL: downloadURL, Filename: filename}, true
}

// deriveFilename picks the target filename for a record, in priority order:
// name+type compose with the URL extension, explicit filename, bare name
// with a .zip suffix, then the URL basename.
func deriveFilename(obj map[string]interface{}, downloadURL string) string {
	base := urlBasename(downloadURL)

	name, hasName := stringField(obj, "name")
	typ, hasType := stringField(obj, "type")
	if hasName && hasType {
		ext := path.Ext(base)
		if ext == "" {
			ext = ".zip"
		}
		return fmt.Sprintf("%s.%s%s", name, typ, ext)
	}
	if filename, ok := stringField(obj, "filename"); ok {
		return filename
	}
	if hasName {
		return name + ".zip"
	}
	return base
}

// urlBasename returns the final path segment of a URL with any query string
// stripped. Operates on the raw string so malformed URLs still yield a name.
func urlBasename(rawURL string) string {
	s := rawURL
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	if j := strings.LastIndexByte(s, '/'); j >= 0 {
		s = s[j+1:]
	}
	return s
}
