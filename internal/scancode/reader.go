package scancode

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// EmptyResult is the tree returned for absent or empty result files. It
// satisfies all later field accesses as "missing".
var EmptyResult = gjson.Parse("{}")

// ReadResult loads the raw JSON result file written by the tool. A path that
// does not exist, is not a regular file, or has length zero yields
// EmptyResult. A malformed file is an error; the tree is never partially
// consumed.
func ReadResult(path string) (gjson.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return EmptyResult, nil
		}
		return gjson.Result{}, fmt.Errorf("failed to stat result file %q: %w", path, err)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return EmptyResult, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read result file %q: %w", path, err)
	}

	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("result file %q does not contain valid JSON", path)
	}

	return gjson.ParseBytes(data), nil
}
